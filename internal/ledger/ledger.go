// Package ledger keeps a local JSON record of command deployments: when each
// scope was last pushed, whether it worked and what it contained.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const historyLimit = 20

// Entry is one deployment attempt of one scope.
type Entry struct {
	Scope        string            `json:"scope"`
	GuildID      string            `json:"guild_id,omitempty"`
	SyncedAt     time.Time         `json:"synced_at"`
	DurationMS   int64             `json:"duration_ms"`
	OK           bool              `json:"ok"`
	ErrorKind    string            `json:"error_kind,omitempty"`
	Error        string            `json:"error,omitempty"`
	Count        int               `json:"count"`
	Fingerprint  string            `json:"fingerprint"`
	Fingerprints map[string]string `json:"fingerprints"`
}

// Record is everything kept for a scope, newest entry first.
type Record struct {
	History []Entry `json:"history"`
}

// Ledger is a JSON file store. Writes go through a temp file and rename, are
// skipped when the content did not change, and rotate a few backups.
type Ledger struct {
	mu           sync.RWMutex
	path         string
	backups      int
	data         map[string]*Record
	lastChecksum string
	now          func() time.Time
}

// Open loads the ledger at path, creating an empty one when missing.
func Open(path string, backups int) (*Ledger, error) {
	if path == "" {
		return nil, fmt.Errorf("ledger path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	l := &Ledger{
		path:    path,
		backups: backups,
		data:    make(map[string]*Record),
		now:     time.Now,
	}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return l, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	if err := json.Unmarshal(raw, &l.data); err != nil {
		return nil, fmt.Errorf("invalid ledger format: %w", err)
	}
	if l.data == nil {
		l.data = make(map[string]*Record)
	}
	l.lastChecksum = checksum(raw)
	return l, nil
}

// Append adds e to its scope's history and saves.
func (l *Ledger) Append(e Entry) error {
	l.mu.Lock()
	rec, ok := l.data[e.Scope]
	if !ok {
		rec = &Record{}
		l.data[e.Scope] = rec
	}
	rec.History = append([]Entry{e}, rec.History...)
	if len(rec.History) > historyLimit {
		rec.History = rec.History[:historyLimit]
	}
	l.mu.Unlock()

	return l.Save()
}

// Last returns the newest entry for scope.
func (l *Ledger) Last(scope string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.data[scope]
	if !ok || len(rec.History) == 0 {
		return Entry{}, false
	}
	return rec.History[0], true
}

// LastSuccessful returns the newest successful entry for scope.
func (l *Ledger) LastSuccessful(scope string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.data[scope]
	if !ok {
		return Entry{}, false
	}
	for _, e := range rec.History {
		if e.OK {
			return e, true
		}
	}
	return Entry{}, false
}

// History returns a copy of the entries for scope, newest first.
func (l *Ledger) History(scope string) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.data[scope]
	if !ok {
		return nil
	}
	out := make([]Entry, len(rec.History))
	copy(out, rec.History)
	return out
}

// Scopes returns the scopes with at least one entry, sorted.
func (l *Ledger) Scopes() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.data))
	for s := range l.data {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Save writes the ledger to disk if it changed since the last save.
func (l *Ledger) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.MarshalIndent(l.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	sum := checksum(data)
	if sum == l.lastChecksum {
		return nil
	}

	if l.backups > 0 {
		if err := l.createBackup(); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}
	if err := l.writeFileAtomic(data); err != nil {
		return err
	}
	l.lastChecksum = sum
	return nil
}

// Close saves pending changes.
func (l *Ledger) Close() error {
	return l.Save()
}

func (l *Ledger) writeFileAtomic(data []byte) error {
	tmp := l.path + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp, l.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func (l *Ledger) createBackup() error {
	src, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer src.Close()

	backup := fmt.Sprintf("%s.backup.%s", l.path, l.now().Format("20060102_150405.000000000"))
	dst, err := os.Create(backup)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}

	l.cleanupOldBackups()
	return nil
}

// cleanupOldBackups keeps the newest l.backups files. Backup names sort
// chronologically.
func (l *Ledger) cleanupOldBackups() {
	matches, err := filepath.Glob(l.path + ".backup.*")
	if err != nil || len(matches) <= l.backups {
		return
	}
	sort.Strings(matches)
	for _, m := range matches[:len(matches)-l.backups] {
		os.Remove(m)
	}
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
