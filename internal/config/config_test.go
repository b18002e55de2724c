package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWithFile(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("BIPONI_NOTIFY_CONFIG_PATH", path)
	Load()
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BIPONI_NOTIFY_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.toml"))
	Load()

	assert.Equal(t, "https://api.biponi.com", Get("server_url"))
	assert.Equal(t, 20, GetInt("page_size", 0))
	assert.Equal(t, 30*time.Second, GetDuration("poll_interval", 0))
	assert.True(t, GetBool("push_enabled"))
	assert.NotEmpty(t, Get("cache_path"))
}

func TestLoad_FromFile(t *testing.T) {
	loadWithFile(t, `
server_url = "https://staging.biponi.com"
page_size = 50
push_enabled = false
`)

	assert.Equal(t, "https://staging.biponi.com", Get("server_url"))
	assert.Equal(t, 50, GetInt("page_size", 0))
	assert.False(t, GetBool("push_enabled"))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("BIPONI_NOTIFY_PAGE_SIZE", "5")
	loadWithFile(t, `page_size = 50`)

	assert.Equal(t, 5, GetInt("page_size", 0))
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	loadWithFile(t, `
page_size = "not-a-number"
log_level = "chatty"
server_url = "::://bad"
`)

	assert.Equal(t, 20, GetInt("page_size", 0))
	assert.Equal(t, "info", Get("log_level"))
	assert.Equal(t, "https://api.biponi.com", Get("server_url"))
}

func TestGetList(t *testing.T) {
	Load()
	Set("default_topics", "system, order_created ,,payment_failed")

	assert.Equal(t, []string{"system", "order_created", "payment_failed"}, GetList("default_topics"))

	Set("default_topics", "")
	assert.Nil(t, GetList("default_topics"))
}

func TestNormalizeBool(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "true"},
		{"yes", "true"},
		{"ON", "true"},
		{"0", "false"},
		{"No", "false"},
		{"off", "false"},
		{"maybe", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeBool(tt.input))
		})
	}
}
