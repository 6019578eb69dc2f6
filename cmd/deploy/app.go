package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/keshon/command-deploy/internal/catalog"
	"github.com/keshon/command-deploy/internal/config"
	"github.com/keshon/command-deploy/internal/deploy"
	"github.com/keshon/command-deploy/internal/discord"
	"github.com/keshon/command-deploy/internal/ledger"
	"github.com/keshon/command-deploy/internal/logging"
	"github.com/keshon/command-deploy/internal/version"
	"github.com/keshon/command-deploy/pkg/cmd"
	"github.com/keshon/command-deploy/pkg/ratelimit"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

// errDeployFailed makes the process exit non-zero after the failure was
// already logged.
var errDeployFailed = errors.New("command deployment failed")

type app struct {
	out      io.Writer
	registry *cmd.Registry
	envFiles []string
	dryRun   bool

	cfg *config.Config
	log logging.Logger

	// newRegistry builds the remote registry; replaced in tests.
	newRegistry func(cfg *config.Config) (deploy.Registry, error)
}

func newApp(out io.Writer) *app {
	return &app{
		out:         out,
		registry:    cmd.DefaultRegistry,
		newRegistry: discordRegistry,
	}
}

func discordRegistry(cfg *config.Config) (deploy.Registry, error) {
	rps := rate.Limit(cfg.RequestRate)
	lim := ratelimit.NewAdaptiveLimiter(rps, 1, 5, 1, 0.5)
	return discord.NewClient(cfg.Token,
		discord.WithTimeout(cfg.RequestTimeout),
		discord.WithLimiter(lim),
	)
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "deploy",
		Short:         "Deploy the bot's application commands to Discord",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(c *cobra.Command, _ []string) error {
			return a.runDeploy(c.Context())
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	root.Flags().BoolVar(&a.dryRun, "dry-run", false, "log what would be pushed without calling Discord")

	root.AddCommand(
		&cobra.Command{
			Use:   "diff",
			Short: "Compare local commands with the last successful deployment",
			RunE:  func(*cobra.Command, []string) error { return a.runDiff() },
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show recorded deployments",
			RunE:  func(*cobra.Command, []string) error { return a.runStatus() },
		},
		&cobra.Command{
			Use:   "list",
			Short: "List local commands per scope",
			RunE:  func(*cobra.Command, []string) error { return a.runList() },
		},
	)
	return root
}

func (a *app) setup() error {
	if _, err := config.LoadDotenv(a.envFiles...); err != nil {
		return err
	}
	cfg, err := config.New()
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.log == nil {
		a.log = logging.New(logging.Options{
			Level: cfg.LogLevel,
			File:  cfg.LogFile,
			JSON:  cfg.LogJSON,
		})
	}
	return nil
}

func (a *app) catalogs() (public, private catalog.Catalog) {
	return catalog.Build(a.registry, cmd.Public), catalog.Build(a.registry, cmd.Private)
}

func (a *app) runDeploy(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	public, private := a.catalogs()

	if a.dryRun {
		a.log.Log(fmt.Sprintf("Dry run: would replace %d private command(s) in guild %s: %s",
			len(private), a.cfg.GuildID, strings.Join(private.Names(), ", ")), logging.LevelInfo)
		a.log.Log(fmt.Sprintf("Dry run: would replace %d global command(s): %s",
			len(public), strings.Join(public.Names(), ", ")), logging.LevelInfo)
		return nil
	}

	reg, err := a.newRegistry(a.cfg)
	if err != nil {
		a.log.Log(fmt.Sprintf("An error occurred while loading application (/) commands: %v", err), logging.LevelError)
		return errDeployFailed
	}

	syncer := deploy.New(reg, a.log, deploy.Target{
		ApplicationID: a.cfg.ApplicationID,
		GuildID:       a.cfg.GuildID,
	})
	res := syncer.Synchronize(ctx, public, private)

	if l, err := ledger.Open(a.cfg.LedgerPath, a.cfg.LedgerBackups); err != nil {
		a.log.Log(fmt.Sprintf("Failed to open deploy ledger: %v", err), logging.LevelWarn)
	} else {
		if err := l.RecordResult(res); err != nil {
			a.log.Log(fmt.Sprintf("Failed to record deployment: %v", err), logging.LevelWarn)
		}
	}

	if !res.OK() {
		return errDeployFailed
	}
	return nil
}

func (a *app) runDiff() error {
	l, err := ledger.Open(a.cfg.LedgerPath, a.cfg.LedgerBackups)
	if err != nil {
		return err
	}
	public, private := a.catalogs()

	for _, sc := range []struct {
		scope catalog.Scope
		cat   catalog.Catalog
	}{
		{catalog.ScopeGuild, private},
		{catalog.ScopeGlobal, public},
	} {
		var previous map[string]string
		if last, ok := l.LastSuccessful(string(sc.scope)); ok {
			previous = last.Fingerprints
		}
		ch := catalog.Diff(previous, sc.cat)
		if ch.Empty() {
			fmt.Fprintf(a.out, "%s: up to date\n", sc.scope)
			continue
		}
		fmt.Fprintf(a.out, "%s:\n", sc.scope)
		for _, n := range ch.Added {
			fmt.Fprintf(a.out, "  + %s\n", n)
		}
		for _, n := range ch.Changed {
			fmt.Fprintf(a.out, "  ~ %s\n", n)
		}
		for _, n := range ch.Removed {
			fmt.Fprintf(a.out, "  - %s\n", n)
		}
	}
	return nil
}

func (a *app) runStatus() error {
	l, err := ledger.Open(a.cfg.LedgerPath, a.cfg.LedgerBackups)
	if err != nil {
		return err
	}
	scopes := l.Scopes()
	if len(scopes) == 0 {
		fmt.Fprintln(a.out, "no deployments recorded")
		return nil
	}
	for _, scope := range scopes {
		e, _ := l.Last(scope)
		state := "ok"
		if !e.OK {
			state = fmt.Sprintf("failed (%s: %s)", e.ErrorKind, e.Error)
		}
		fmt.Fprintf(a.out, "%s: %s at %s, %d command(s), %dms\n",
			scope, state, e.SyncedAt.Format("2006-01-02 15:04:05 MST"), e.Count, e.DurationMS)
	}
	return nil
}

func (a *app) runList() error {
	public, private := a.catalogs()
	fmt.Fprintf(a.out, "global (%d):\n", len(public))
	for _, n := range public.Names() {
		fmt.Fprintf(a.out, "  %s\n", n)
	}
	fmt.Fprintf(a.out, "guild %s (%d):\n", a.cfg.GuildID, len(private))
	for _, n := range private.Names() {
		fmt.Fprintf(a.out, "  %s\n", n)
	}
	return nil
}
