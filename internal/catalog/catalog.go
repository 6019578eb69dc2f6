// Package catalog turns registered commands into the opaque definitions that
// are pushed to Discord, and keeps them keyed by name.
package catalog

import (
	"encoding/json"
	"sort"

	"github.com/keshon/command-deploy/internal/command"
	"github.com/keshon/command-deploy/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Scope is the remote visibility a catalog is pushed to.
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeGuild  Scope = "guild"
)

// Definition is an opaque, serializable command definition. Its shape belongs
// to the remote platform; nothing here interprets it beyond Name.
type Definition interface {
	Name() string
	Serialize() ([]byte, error)
}

// Fingerprinter is optionally implemented by definitions that know which of
// their fields are stable across deployments.
type Fingerprinter interface {
	Fingerprint() string
}

// Catalog maps a command name to its definition.
type Catalog map[string]Definition

// Add stores def under its name, replacing any previous entry.
func (c Catalog) Add(def Definition) {
	c[def.Name()] = def
}

// Names returns the catalog keys, sorted.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns the entries sorted by name so payloads are stable.
func (c Catalog) Definitions() []Definition {
	out := make([]Definition, 0, len(c))
	for _, name := range c.Names() {
		out = append(out, c[name])
	}
	return out
}

// Serialize encodes every definition, sorted by name. The first failure
// aborts and is returned with the offending name.
func (c Catalog) Serialize() ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(c))
	for _, def := range c.Definitions() {
		data, err := def.Serialize()
		if err != nil {
			return nil, &SerializeError{Name: def.Name(), Err: err}
		}
		out = append(out, json.RawMessage(data))
	}
	return out, nil
}

// SerializeError reports a definition that could not be encoded.
type SerializeError struct {
	Name string
	Err  error
}

func (e *SerializeError) Error() string {
	return "serialize " + e.Name + ": " + e.Err.Error()
}

func (e *SerializeError) Unwrap() error { return e.Err }

// Slash is a Discord application command definition, slash or context menu.
type Slash struct {
	Command *discordgo.ApplicationCommand
}

func (s Slash) Name() string { return s.Command.Name }

func (s Slash) Serialize() ([]byte, error) {
	return json.Marshal(s.Command)
}

func (s Slash) Fingerprint() string {
	return hashCommand(s.Command)
}

// Build snapshots one registry scope into a catalog. Commands that provide
// no Discord definition are skipped.
func Build(reg *cmd.Registry, scope cmd.Scope) Catalog {
	out := make(Catalog)
	for _, c := range reg.GetAll(scope) {
		if def := command.Definition(c); def != nil {
			out.Add(Slash{Command: def})
		}
	}
	return out
}
