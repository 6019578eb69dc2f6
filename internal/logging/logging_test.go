package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestJSONLoggerMapsLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{JSON: true, Console: &buf})

	log.Log("started", LevelInfo)
	log.Log("reloaded", LevelDone)
	log.Log("careful", LevelWarn)
	log.Log("boom", LevelError)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "info", lines[1]["level"])
	assert.Equal(t, "done", lines[1]["status"])
	assert.Equal(t, "warn", lines[2]["level"])
	assert.Equal(t, "error", lines[3]["level"])
	assert.Equal(t, "boom", lines[3]["message"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{JSON: true, Console: &buf, Level: "error"})

	log.Log("quiet", LevelInfo)
	log.Log("loud", LevelError)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "loud", lines[0]["message"])
}

func TestLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.log")
	var buf bytes.Buffer
	log := New(Options{JSON: true, Console: &buf, File: path})

	log.Log("to file", LevelInfo)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Log("a", LevelInfo)
	r.Log("b", LevelError)
	r.Log("c", LevelError)

	assert.Equal(t, 2, r.Count(LevelError))
	assert.Equal(t, Entry{Msg: "a", Level: LevelInfo}, r.Entries()[0])
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "done", LevelDone.String())
	assert.Equal(t, "unknown", Level(42).String())
}
