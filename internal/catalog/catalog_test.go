package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/keshon/command-deploy/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slashCmd struct {
	name string
	opts []*discordgo.ApplicationCommandOption
}

func (s slashCmd) Name() string        { return s.name }
func (s slashCmd) Description() string { return s.name + " description" }
func (s slashCmd) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: s.name, Description: s.Description(), Options: s.opts}
}

type plainCmd struct{}

func (plainCmd) Name() string        { return "plain" }
func (plainCmd) Description() string { return "" }

type brokenDef struct{}

func (brokenDef) Name() string               { return "broken" }
func (brokenDef) Serialize() ([]byte, error) { return nil, errors.New("no encoder") }

func TestBuildSnapshotsScope(t *testing.T) {
	reg := cmd.NewRegistry()
	reg.Register(slashCmd{name: "ping"})
	reg.Register(plainCmd{})
	reg.RegisterPrivate(slashCmd{name: "devcmd"})

	public := Build(reg, cmd.Public)
	private := Build(reg, cmd.Private)

	assert.Equal(t, []string{"ping"}, public.Names())
	assert.Equal(t, []string{"devcmd"}, private.Names())
}

func TestSerializeKeepsEveryEntry(t *testing.T) {
	c := make(Catalog)
	c.Add(Slash{Command: &discordgo.ApplicationCommand{Name: "roll", Description: "Roll dice"}})
	c.Add(Slash{Command: &discordgo.ApplicationCommand{Name: "about", Description: "About"}})

	raw, err := c.Serialize()
	require.NoError(t, err)
	require.Len(t, raw, 2)

	var first discordgo.ApplicationCommand
	require.NoError(t, json.Unmarshal(raw[0], &first))
	assert.Equal(t, "about", first.Name)
}

func TestSerializeReportsOffendingDefinition(t *testing.T) {
	c := Catalog{"broken": brokenDef{}}

	_, err := c.Serialize()
	var serr *SerializeError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "broken", serr.Name)
}

func TestFingerprintIgnoresRuntimeFieldsAndOptionOrder(t *testing.T) {
	a := &discordgo.ApplicationCommand{
		Name:        "help",
		Description: "Get help",
		Options: []*discordgo.ApplicationCommandOption{
			{Name: "command", Description: "c", Type: discordgo.ApplicationCommandOptionString},
			{Name: "view", Description: "v", Type: discordgo.ApplicationCommandOptionString},
		},
	}
	b := &discordgo.ApplicationCommand{
		ID:            "123",
		ApplicationID: "456",
		Version:       "789",
		Name:          "help",
		Description:   "Get help",
		Options:       []*discordgo.ApplicationCommandOption{a.Options[1], a.Options[0]},
	}

	assert.Equal(t, Fingerprint(Slash{Command: a}), Fingerprint(Slash{Command: b}))

	b.Description = "Get more help"
	assert.NotEqual(t, Fingerprint(Slash{Command: a}), Fingerprint(Slash{Command: b}))
}

func TestCatalogFingerprintStable(t *testing.T) {
	one := Catalog{}
	two := Catalog{}
	for _, n := range []string{"a", "b", "c"} {
		one.Add(Slash{Command: &discordgo.ApplicationCommand{Name: n}})
	}
	for _, n := range []string{"c", "a", "b"} {
		two.Add(Slash{Command: &discordgo.ApplicationCommand{Name: n}})
	}

	assert.Equal(t, one.Fingerprint(), two.Fingerprint())
	assert.Len(t, one.Fingerprints(), 3)
}

func TestDiff(t *testing.T) {
	current := Catalog{}
	current.Add(Slash{Command: &discordgo.ApplicationCommand{Name: "ping", Description: "Pong"}})
	current.Add(Slash{Command: &discordgo.ApplicationCommand{Name: "help", Description: "New text"}})
	current.Add(Slash{Command: &discordgo.ApplicationCommand{Name: "about", Description: "About"}})

	previous := map[string]string{
		"about": Fingerprint(current["about"]),
		"help":  "stale",
		"roll":  "gone",
	}

	ch := Diff(previous, current)
	assert.Equal(t, []string{"ping"}, ch.Added)
	assert.Equal(t, []string{"help"}, ch.Changed)
	assert.Equal(t, []string{"roll"}, ch.Removed)
	assert.False(t, ch.Empty())
	assert.True(t, Diff(current.Fingerprints(), current).Empty())
}
