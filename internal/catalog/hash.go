package catalog

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Fingerprint returns a stable hash for def. Definitions without their own
// notion of stability are hashed on their serialized form.
func Fingerprint(def Definition) string {
	if f, ok := def.(Fingerprinter); ok {
		return f.Fingerprint()
	}
	data, err := def.Serialize()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", sha1.Sum(data))
}

// Fingerprints returns name → fingerprint for every entry.
func (c Catalog) Fingerprints() map[string]string {
	out := make(map[string]string, len(c))
	for name, def := range c {
		out[name] = Fingerprint(def)
	}
	return out
}

// Fingerprint hashes the whole catalog. Equal catalogs hash equal whatever
// their map order.
func (c Catalog) Fingerprint() string {
	var b strings.Builder
	for _, name := range c.Names() {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(Fingerprint(c[name]))
		b.WriteByte('\n')
	}
	return fmt.Sprintf("%x", sha1.Sum([]byte(b.String())))
}

// hashCommand returns a deterministic SHA-1 of a command's stable fields.
// IDs, versions and application ids are left out.
func hashCommand(c *discordgo.ApplicationCommand) string {
	stable := map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"type":        c.Type,
	}
	if c.DefaultMemberPermissions != nil {
		stable["default_member_permissions"] = *c.DefaultMemberPermissions
	}
	if c.NameLocalizations != nil {
		stable["name_localizations"] = *c.NameLocalizations
	}
	if c.DescriptionLocalizations != nil {
		stable["description_localizations"] = *c.DescriptionLocalizations
	}
	if len(c.Options) > 0 {
		stable["options"] = normalizeOptions(c.Options)
	}
	data, _ := json.Marshal(stable)
	return fmt.Sprintf("%x", sha1.Sum(data))
}

func normalizeOptions(opts []*discordgo.ApplicationCommandOption) []map[string]interface{} {
	out := make([]map[string]interface{}, len(opts))
	for i, o := range opts {
		entry := map[string]interface{}{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if o.Autocomplete {
			entry["autocomplete"] = true
		}
		if len(o.ChannelTypes) > 0 {
			entry["channel_types"] = o.ChannelTypes
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]interface{}, len(o.Choices))
			for j, ch := range o.Choices {
				choices[j] = map[string]interface{}{"name": ch.Name, "value": ch.Value}
			}
			entry["choices"] = choices
		}
		if len(o.Options) > 0 {
			entry["options"] = normalizeOptions(o.Options)
		}
		out[i] = entry
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i]["name"].(string) < out[j]["name"].(string)
	})
	return out
}
