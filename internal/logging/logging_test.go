package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestLogger(t *testing.T, cfg Config) (Logger, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BIPONI_NOTIFY_LOG_DIR", dir)
	l, err := Init(cfg)
	require.NoError(t, err)
	return l, dir
}

func readLogFile(t *testing.T, dir string) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	return string(data)
}

func TestInit_Disabled(t *testing.T) {
	l, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	// Must be safe to use and shut down
	l.Info("ignored")
	assert.NoError(t, l.Shutdown())
}

func TestInit_WritesJSONLines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	l, dir := initTestLogger(t, cfg)

	l.Info("fetched page", "page", 2, "count", 20)
	require.NoError(t, l.Shutdown())

	content := readLogFile(t, dir)
	line := strings.TrimSpace(strings.Split(content, "\n")[0])
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	assert.Equal(t, "fetched page", record["msg"])
	assert.EqualValues(t, 2, record["page"])
	assert.Equal(t, "biponi-notify", record["command"])
}

func TestInit_RespectsLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Level = "warn"
	l, dir := initTestLogger(t, cfg)

	l.Info("quiet")
	l.Warn("loud")
	require.NoError(t, l.Shutdown())

	content := readLogFile(t, dir)
	assert.NotContains(t, content, "quiet")
	assert.Contains(t, content, "loud")
}

func TestWith_AddsFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	l, dir := initTestLogger(t, cfg)

	l.With("component", "store").Info("ready")
	require.NoError(t, l.Shutdown())

	content := readLogFile(t, dir)
	assert.Contains(t, content, `"component":"store"`)
}

func TestRedaction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	l, dir := initTestLogger(t, cfg)

	l.Info("registered", "token", "secret-token-value-1234")
	require.NoError(t, l.Shutdown())

	content := readLogFile(t, dir)
	assert.NotContains(t, content, "secret-token-value-1234")
	assert.Contains(t, content, "sec...234")
}

func TestRedactArgs(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want []any
	}{
		{"no args", nil, nil},
		{"plain args untouched", []any{"page", 1}, []any{"page", 1}},
		{"short secret fully masked", []any{"token", "abc"}, []any{"token", "[redacted]"}},
		{"non-string key skipped", []any{1, "x"}, []any{1, "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redactArgs(tt.args))
		})
	}
}

func TestRotate_RemovesOldest(t *testing.T) {
	dir := t.TempDir()
	names := []string{"biponi-notify_a.log", "biponi-notify_b.log", "biponi-notify_c.log"}
	for i, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
		mtime := time.Now().Add(time.Duration(i-3) * time.Hour)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
	// Unrelated file must survive
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))

	require.NoError(t, rotate(dir, 2))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var remaining []string
	for _, e := range entries {
		remaining = append(remaining, e.Name())
	}
	assert.NotContains(t, remaining, "biponi-notify_a.log")
	assert.Contains(t, remaining, "biponi-notify_c.log")
	assert.Contains(t, remaining, "other.txt")
}
