// Package logging provides structured file logging for biponi-notify.
package logging

import (
	"os"
	"path/filepath"
)

// Config holds logging configuration.
type Config struct {
	// Enabled determines whether logging is active.
	Enabled bool
	// Level is the minimum log level to record.
	Level string
	// MaxFiles is the maximum number of log files to retain.
	MaxFiles int
	// Command is the name of the command being executed.
	Command string
	// PID is the process ID.
	PID int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Enabled:  false,
		Level:    "info",
		MaxFiles: 5,
		Command:  "biponi-notify",
		PID:      os.Getpid(),
	}
}

// LogDir returns the directory where log files are written,
// honoring XDG_STATE_HOME.
func LogDir() (string, error) {
	if dir := os.Getenv("BIPONI_NOTIFY_LOG_DIR"); dir != "" {
		return dir, nil
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "biponi-notify", "logs"), nil
}
