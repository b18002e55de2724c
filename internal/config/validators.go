package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/biponi/notify/internal/colors"
)

// Validator validates and normalizes a configuration value.
// Returns the normalized value and an error if validation fails.
type Validator func(key, value, defaultValue string) (normalized string, err error)

type validatorRegistry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

var registry = &validatorRegistry{
	validators: make(map[string]Validator),
}

// RegisterValidator registers a validator for a configuration key.
// Panics if a validator is already registered for the key.
func RegisterValidator(key string, validator Validator) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.validators[key]; exists {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	registry.validators[key] = validator
}

func getValidator(key string) Validator {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.validators[key]
}

// PositiveIntValidator returns a validator that ensures a value is a positive integer.
func PositiveIntValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': must be a positive integer, using default: %s", key, value, defaultValue))
			return defaultValue, nil
		}
		return value, nil
	}
}

// BoolValidator returns a validator that normalizes and validates boolean values.
func BoolValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		normalized := normalizeBool(value)
		if normalized != "true" && normalized != "false" {
			colors.Warning(fmt.Sprintf("invalid boolean value for %s: '%s', using default: %s", key, value, defaultValue))
			return defaultValue, nil
		}
		return normalized, nil
	}
}

// EnumValidator returns a validator that ensures a value is one of the allowed values.
func EnumValidator(allowed ...string) Validator {
	set := make(map[string]bool, len(allowed))
	for _, v := range allowed {
		set[v] = true
	}
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		lower := strings.ToLower(value)
		if !set[lower] {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': must be one of %s, using default: %s",
				key, value, strings.Join(allowed, ", "), defaultValue))
			return defaultValue, nil
		}
		return lower, nil
	}
}

// URLValidator returns a validator that ensures a value parses as an http(s) or ws(s) URL.
func URLValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		u, err := url.Parse(value)
		if err != nil || u.Host == "" {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': not a valid URL, using default: %s", key, value, defaultValue))
			return defaultValue, nil
		}
		switch u.Scheme {
		case "http", "https", "ws", "wss":
			return strings.TrimRight(value, "/"), nil
		}
		colors.Warning(fmt.Sprintf("invalid %s scheme '%s', using default: %s", key, u.Scheme, defaultValue))
		return defaultValue, nil
	}
}

func normalizeBool(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return "true"
	case "0", "false", "no", "off":
		return "false"
	default:
		return value
	}
}

func initValidators() {
	RegisterValidator("server_url", URLValidator())
	RegisterValidator("push_url", URLValidator())
	RegisterValidator("page_size", PositiveIntValidator())
	RegisterValidator("poll_interval", PositiveIntValidator())
	RegisterValidator("push_await_timeout", PositiveIntValidator())
	RegisterValidator("cache_limit", PositiveIntValidator())
	RegisterValidator("log_max_files", PositiveIntValidator())
	RegisterValidator("push_enabled", BoolValidator())
	RegisterValidator("cache_enabled", BoolValidator())
	RegisterValidator("log_enabled", BoolValidator())
	RegisterValidator("debug", BoolValidator())
	RegisterValidator("log_level", EnumValidator("debug", "info", "warn", "error"))
}
