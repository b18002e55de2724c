// Package config provides configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/biponi/notify/internal/colors"
)

// FileExtTOML is the file extension for TOML configuration files.
const FileExtTOML = ".toml"

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x).
	FileModeDir os.FileMode = 0o755
	// FileModeFile is the permission for data files (rw-r--r--).
	FileModeFile os.FileMode = 0o644
)

var (
	config map[string]string
	mu     sync.RWMutex
)

func init() {
	initValidators()
}

// Load initializes configuration. Defaults are applied first, then the
// config file, then environment overrides; env always wins.
func Load() {
	mu.Lock()
	defer mu.Unlock()

	config = make(map[string]string)

	setDefaults()
	loadFromFile()
	loadFromEnv()
	validate()
	computeDirs()
}

// setDefaults populates config with default values.
func setDefaults() {
	home, _ := os.UserHomeDir()
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(home, ".config")
	}
	xdgStateHome := os.Getenv("XDG_STATE_HOME")
	if xdgStateHome == "" {
		xdgStateHome = filepath.Join(home, ".local", "state")
	}

	config["config_dir"] = filepath.Join(xdgConfigHome, "biponi-notify")
	config["state_dir"] = filepath.Join(xdgStateHome, "biponi-notify")

	config["server_url"] = "https://api.biponi.com"
	config["page_size"] = "20"
	config["poll_interval"] = "30"
	config["push_enabled"] = "true"
	config["push_url"] = ""
	config["push_await_timeout"] = "90"
	config["cache_enabled"] = "true"
	config["cache_limit"] = "100"
	config["default_topics"] = "system,order_created,payment_failed"
	config["log_enabled"] = "false"
	config["log_level"] = "info"
	config["log_max_files"] = "5"
	config["debug"] = "false"
}

// loadFromFile reads configuration from the TOML config file.
func loadFromFile() {
	configPath := os.Getenv("BIPONI_NOTIFY_CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(config["config_dir"], "config"+FileExtTOML)
		if _, err := os.Stat(configPath); err != nil {
			return
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		colors.Debug(fmt.Sprintf("unable to read config file %s: %v", configPath, err))
		return
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		colors.Warning(fmt.Sprintf("unable to parse config file %s: %v", configPath, err))
		return
	}

	for k, v := range raw {
		key := strings.ToLower(k)
		converted, ok := coerceConfigValue(v)
		if !ok {
			colors.Warning(fmt.Sprintf("unsupported config value type for %s: %T", key, v))
			continue
		}
		config[key] = converted
	}
}

// coerceConfigValue converts a configuration value to its string representation.
func coerceConfigValue(value interface{}) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		return "", false
	}
}

// loadFromEnv applies BIPONI_NOTIFY_* environment variable overrides.
func loadFromEnv() {
	for key := range config {
		envKey := "BIPONI_NOTIFY_" + strings.ToUpper(key)
		if value, ok := os.LookupEnv(envKey); ok {
			config[key] = value
		}
	}
}

// validate runs registered validators over all known keys.
func validate() {
	defaults := make(map[string]string)
	prev := config
	config = make(map[string]string)
	setDefaults()
	for k, v := range config {
		defaults[k] = v
	}
	config = prev

	for key, value := range config {
		validator := getValidator(key)
		if validator == nil {
			continue
		}
		normalized, err := validator(key, value, defaults[key])
		if err != nil {
			colors.Warning(fmt.Sprintf("config %s: %v", key, err))
			normalized = defaults[key]
		}
		config[key] = normalized
	}
}

// computeDirs derives paths that depend on other config values.
func computeDirs() {
	if _, ok := config["cache_path"]; !ok {
		config["cache_path"] = filepath.Join(config["state_dir"], "cache.db")
	}
}

// Get returns the configuration value for key, or empty string.
func Get(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	return config[strings.ToLower(key)]
}

// GetInt returns the integer value for key, or fallback when unset or invalid.
func GetInt(key string, fallback int) int {
	n, err := strconv.Atoi(Get(key))
	if err != nil {
		return fallback
	}
	return n
}

// GetBool returns the boolean value for key.
func GetBool(key string) bool {
	return normalizeBool(Get(key)) == "true"
}

// GetDuration interprets the value of key as a number of seconds.
func GetDuration(key string, fallback time.Duration) time.Duration {
	n, err := strconv.Atoi(Get(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}

// GetList splits a comma-separated value into its non-empty parts.
func GetList(key string) []string {
	raw := Get(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Set overrides a configuration value. Used in tests.
func Set(key, value string) {
	mu.Lock()
	defer mu.Unlock()
	if config == nil {
		config = make(map[string]string)
	}
	config[strings.ToLower(key)] = value
}
