package ledger

import (
	"errors"

	"github.com/keshon/command-deploy/internal/deploy"
)

// EntryFromScope converts one synchronizer outcome into a ledger entry.
func EntryFromScope(sr deploy.ScopeResult) Entry {
	e := Entry{
		Scope:        string(sr.Scope),
		GuildID:      sr.GuildID,
		SyncedAt:     sr.StartedAt.UTC(),
		DurationMS:   sr.Duration.Milliseconds(),
		OK:           sr.OK(),
		Count:        len(sr.Commands),
		Fingerprint:  sr.Catalog.Fingerprint(),
		Fingerprints: sr.Catalog.Fingerprints(),
	}
	if sr.Err != nil {
		e.ErrorKind = string(sr.Err.Kind)
		e.Error = sr.Err.Err.Error()
	}
	return e
}

// RecordResult appends one entry per attempted scope.
func (l *Ledger) RecordResult(res *deploy.Result) error {
	var errs []error
	for _, sr := range res.Scopes {
		if err := l.Append(EntryFromScope(sr)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
