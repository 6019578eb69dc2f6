// Package logging is the fire-and-forget logging channel: a message and a
// level in, nothing out.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level tags a log message.
type Level int

const (
	LevelInfo Level = iota
	LevelDone
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelDone:
		return "done"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Logger accepts a message and a level. Implementations must not block the
// caller on a slow sink for long and never report failures back.
type Logger interface {
	Log(msg string, level Level)
}

// Options configures New.
type Options struct {
	Level   string // zerolog level name, "info" when empty
	File    string // optional rotated log file
	JSON    bool   // raw JSON on stderr instead of the console writer
	Console io.Writer
}

type zeroLogger struct {
	zl zerolog.Logger
}

// New returns a zerolog-backed Logger.
func New(opts Options) Logger {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	if !opts.JSON {
		console = zerolog.ConsoleWriter{Out: console, TimeFormat: time.DateTime}
	}

	writers := []io.Writer{console}
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().Timestamp().Logger()
	return &zeroLogger{zl: zl}
}

func (l *zeroLogger) Log(msg string, level Level) {
	switch level {
	case LevelDone:
		l.zl.Info().Str("status", "done").Msg(msg)
	case LevelWarn:
		l.zl.Warn().Msg(msg)
	case LevelError:
		l.zl.Error().Msg(msg)
	default:
		l.zl.Info().Msg(msg)
	}
}

type nop struct{}

func (nop) Log(string, Level) {}

// Nop returns a Logger that drops everything.
func Nop() Logger { return nop{} }

// Entry is one message captured by a Recorder.
type Entry struct {
	Msg   string
	Level Level
}

// Recorder keeps every message in memory. Used by tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Log(msg string, level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Msg: msg, Level: level})
}

// Entries returns a copy of the recorded messages.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns how many messages were recorded at level.
func (r *Recorder) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}
