// Package deploy pushes the public and private command catalogs to the remote
// command registry with whole-set replace calls.
package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/keshon/command-deploy/internal/catalog"
	"github.com/keshon/command-deploy/internal/logging"
)

// Registry is the remote command registry. Each call replaces the complete
// set of commands for its scope. Credentials live in the implementation.
type Registry interface {
	ReplaceGuildCommands(ctx context.Context, appID, guildID string, defs []json.RawMessage) error
	ReplaceGlobalCommands(ctx context.Context, appID string, defs []json.RawMessage) error
}

// Target identifies where catalogs are pushed.
type Target struct {
	ApplicationID string
	GuildID       string
}

// ScopeResult is the outcome of one attempted bulk replace.
type ScopeResult struct {
	Scope     catalog.Scope
	GuildID   string
	Commands  []string
	Catalog   catalog.Catalog
	StartedAt time.Time
	Duration  time.Duration
	Err       *SyncError
}

// OK reports whether the push succeeded.
func (r ScopeResult) OK() bool { return r.Err == nil }

// Result lists the scopes attempted by one Synchronize call, in order.
type Result struct {
	Scopes []ScopeResult
}

// OK reports whether every attempted push succeeded.
func (r *Result) OK() bool {
	for _, s := range r.Scopes {
		if !s.OK() {
			return false
		}
	}
	return true
}

// Err joins the failures, nil when OK.
func (r *Result) Err() error {
	var errs []error
	for _, s := range r.Scopes {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errors.Join(errs...)
}

// Scope returns the result for scope, if it was attempted.
func (r *Result) Scope(scope catalog.Scope) (ScopeResult, bool) {
	for _, s := range r.Scopes {
		if s.Scope == scope {
			return s, true
		}
	}
	return ScopeResult{}, false
}

// Synchronizer pushes catalogs to a Registry.
type Synchronizer struct {
	registry Registry
	log      logging.Logger
	target   Target
	now      func() time.Time
}

// New returns a Synchronizer. A nil logger discards messages.
func New(registry Registry, log logging.Logger, target Target) *Synchronizer {
	if log == nil {
		log = logging.Nop()
	}
	return &Synchronizer{
		registry: registry,
		log:      log,
		target:   target,
		now:      time.Now,
	}
}

// Synchronize replaces the private guild set (only when private is non-empty)
// and then the global set. The guild push finishes before the global one
// starts, and a guild failure does not stop the global push. No retries.
// All failures become one error log line and are reported in the Result,
// never returned as a panic or error.
//
// The two pushes are not atomic together: a global failure after a guild
// success leaves the guild set updated and the global set stale.
func (s *Synchronizer) Synchronize(ctx context.Context, public, private catalog.Catalog) *Result {
	res := &Result{}
	s.log.Log("Started loading application commands.", logging.LevelInfo)

	if len(private) > 0 {
		s.log.Log("Started loading private (/) commands.", logging.LevelInfo)
		res.Scopes = append(res.Scopes, s.push(ctx, catalog.ScopeGuild, private))
	}

	res.Scopes = append(res.Scopes, s.push(ctx, catalog.ScopeGlobal, public))

	if res.OK() {
		s.log.Log("Successfully reloaded application (/) commands.", logging.LevelDone)
		return res
	}
	s.log.Log("An error occurred while loading application (/) commands: "+failureSummary(res), logging.LevelError)
	return res
}

// failureSummary joins every failed scope into one line: "<kind> (<scope> scope): <err>; ...".
func failureSummary(res *Result) string {
	var parts []string
	for _, sr := range res.Scopes {
		if sr.Err != nil {
			parts = append(parts, fmt.Sprintf("%s (%s scope): %v", sr.Err.Kind, sr.Scope, sr.Err.Err))
		}
	}
	return strings.Join(parts, "; ")
}

func (s *Synchronizer) push(ctx context.Context, scope catalog.Scope, c catalog.Catalog) (sr ScopeResult) {
	sr = ScopeResult{
		Scope:     scope,
		Commands:  c.Names(),
		Catalog:   c,
		StartedAt: s.now(),
	}
	if scope == catalog.ScopeGuild {
		sr.GuildID = s.target.GuildID
	}
	defer func() {
		// A misbehaving registry must not take the host process down.
		if r := recover(); r != nil {
			sr.Err = &SyncError{Scope: scope, Kind: KindUnknown, Err: fmt.Errorf("panic: %v", r)}
		}
		sr.Duration = s.now().Sub(sr.StartedAt)
	}()

	defs, err := c.Serialize()
	if err == nil {
		if scope == catalog.ScopeGuild {
			err = s.registry.ReplaceGuildCommands(ctx, s.target.ApplicationID, s.target.GuildID, defs)
		} else {
			err = s.registry.ReplaceGlobalCommands(ctx, s.target.ApplicationID, defs)
		}
	}
	if err != nil {
		sr.Err = &SyncError{Scope: scope, Kind: Classify(err), Err: err}
	}
	return sr
}
