package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keshon/command-deploy/internal/config"
	"github.com/keshon/command-deploy/internal/deploy"
	"github.com/keshon/command-deploy/internal/logging"
	"github.com/keshon/command-deploy/internal/version"
	"github.com/keshon/command-deploy/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCommand struct{ name string }

func (c testCommand) Name() string        { return c.name }
func (c testCommand) Description() string { return c.name + " command" }
func (c testCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: c.name, Description: c.Description()}
}

type countingRegistry struct {
	guild, global int
	err           error
}

func (r *countingRegistry) ReplaceGuildCommands(context.Context, string, string, []json.RawMessage) error {
	r.guild++
	return r.err
}

func (r *countingRegistry) ReplaceGlobalCommands(context.Context, string, []json.RawMessage) error {
	r.global++
	return r.err
}

func newTestApp(t *testing.T, remote *countingRegistry) (*app, *bytes.Buffer, *logging.Recorder) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LEDGER_PATH", filepath.Join(dir, "deploy.json"))
	t.Setenv("LEDGER_BACKUPS", "0")
	t.Setenv("CLIENT_ID", "app")
	t.Setenv("PRIVATE_GUILD_ID", "guild")

	reg := cmd.NewRegistry()
	reg.Register(testCommand{"ping"})
	reg.RegisterPrivate(testCommand{"devcmd"})

	var out bytes.Buffer
	rec := &logging.Recorder{}
	a := newApp(&out)
	a.registry = reg
	a.log = rec
	a.envFiles = []string{filepath.Join(dir, "missing.env")}
	a.newRegistry = func(*config.Config) (deploy.Registry, error) { return remote, nil }
	require.NoError(t, a.setup())
	return a, &out, rec
}

func TestDeployPushesBothScopesAndRecords(t *testing.T) {
	remote := &countingRegistry{}
	a, out, rec := newTestApp(t, remote)

	require.NoError(t, a.runDeploy(context.Background()))
	assert.Equal(t, 1, remote.guild)
	assert.Equal(t, 1, remote.global)
	assert.Equal(t, 1, rec.Count(logging.LevelDone))

	require.NoError(t, a.runStatus())
	assert.Contains(t, out.String(), "global: ok")
	assert.Contains(t, out.String(), "guild: ok")

	out.Reset()
	require.NoError(t, a.runDiff())
	assert.Equal(t, "guild: up to date\nglobal: up to date\n", out.String())
}

func TestDeployFailureReturnsSentinel(t *testing.T) {
	remote := &countingRegistry{err: errors.New("connection reset")}
	a, out, rec := newTestApp(t, remote)

	err := a.runDeploy(context.Background())
	require.ErrorIs(t, err, errDeployFailed)
	assert.Equal(t, 1, remote.global, "global attempted after guild failure")
	assert.Equal(t, 1, rec.Count(logging.LevelError))

	require.NoError(t, a.runStatus())
	assert.Contains(t, out.String(), "failed (unknown: connection reset)")
}

func TestDryRunSkipsRemote(t *testing.T) {
	remote := &countingRegistry{}
	a, _, rec := newTestApp(t, remote)
	a.dryRun = true

	require.NoError(t, a.runDeploy(context.Background()))
	assert.Zero(t, remote.guild+remote.global)
	assert.Equal(t, 2, rec.Count(logging.LevelInfo))
}

func TestDiffBeforeAnyDeploy(t *testing.T) {
	a, out, _ := newTestApp(t, &countingRegistry{})

	require.NoError(t, a.runDiff())
	assert.Equal(t, "guild:\n  + devcmd\nglobal:\n  + ping\n", out.String())
}

func TestList(t *testing.T) {
	a, out, _ := newTestApp(t, &countingRegistry{})

	require.NoError(t, a.runList())
	assert.Equal(t, "global (1):\n  ping\nguild guild (1):\n  devcmd\n", out.String())
}

func TestStatusEmpty(t *testing.T) {
	a, out, _ := newTestApp(t, &countingRegistry{})

	require.NoError(t, a.runStatus())
	assert.Equal(t, "no deployments recorded\n", out.String())
}

type describedCommand struct{ name, desc string }

func (c describedCommand) Name() string        { return c.name }
func (c describedCommand) Description() string { return c.desc }
func (c describedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: c.name, Description: c.desc}
}

func TestDiffAfterCatalogChanges(t *testing.T) {
	a, out, _ := newTestApp(t, &countingRegistry{})
	a.registry.Register(describedCommand{"help", "Get help"})
	a.registry.Register(describedCommand{"roll", "Roll dice"})
	require.NoError(t, a.runDeploy(context.Background()))

	reg := cmd.NewRegistry()
	reg.Register(testCommand{"ping"})
	reg.Register(describedCommand{"help", "Get a list of available commands"})
	reg.Register(describedCommand{"about", "About the bot"})
	reg.RegisterPrivate(testCommand{"devcmd"})
	a.registry = reg

	require.NoError(t, a.runDiff())
	assert.Equal(t, "guild: up to date\nglobal:\n  + about\n  ~ help\n  - roll\n", out.String())
}

func TestStatusAfterDeploy(t *testing.T) {
	a, out, _ := newTestApp(t, &countingRegistry{})
	require.NoError(t, a.runDeploy(context.Background()))

	require.NoError(t, a.runStatus())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, `^global: ok at \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} UTC, 1 command\(s\), \d+ms$`, lines[0])
	assert.Regexp(t, `^guild: ok at .+, 1 command\(s\), \d+ms$`, lines[1])
}

func TestVersionFlag(t *testing.T) {
	var buf bytes.Buffer
	root := newRootCommand(newApp(&buf))
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, version.String()+"\n", buf.String())
}
