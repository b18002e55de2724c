// Package search provides a unified search abstraction for filtering
// notifications. It supports multiple search strategies (substring,
// regex, token-based) through a common Provider interface, so the CLI
// and the panel share one matching implementation.
package search

import (
	"github.com/biponi/notify/internal/domain"
)

// Provider defines the interface for search providers.
// Implementations can use different strategies (substring, regex,
// token-based, etc.) to match notifications against search queries.
type Provider interface {
	// Match returns true if the notification matches the search query.
	Match(n domain.Notification, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in (default: subject, message, topic)
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: false,
		Fields:          []string{"subject", "message", "topic"},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "subject", "message", "topic", "priority", "id".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValue resolves a field name to the notification's value for it.
func fieldValue(n domain.Notification, field string) string {
	switch field {
	case "subject":
		return n.Subject
	case "message":
		return n.Message
	case "topic":
		return n.Topic
	case "priority":
		return string(n.Priority)
	case "id":
		return n.ID
	}
	return ""
}

// Apply filters notifications down to those the provider matches.
func Apply(p Provider, notifications []domain.Notification, query string) []domain.Notification {
	if query == "" {
		return notifications
	}
	var out []domain.Notification
	for _, n := range notifications {
		if p.Match(n, query) {
			out = append(out, n)
		}
	}
	return out
}
