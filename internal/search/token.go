package search

import (
	"strings"

	"github.com/biponi/notify/internal/domain"
)

// TokenProvider provides token-based search.
// The query is split into whitespace-separated tokens.
// Each token must match at least one field (AND logic).
// Special tokens: "read" (match only read), "unread" (match only unread).
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if all text tokens match at least one field
// and the notification matches the read/unread filter if specified.
func (p *TokenProvider) Match(n domain.Notification, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}

	tokens := strings.Fields(query)
	readFilter := false
	unreadFilter := false
	textTokens := []string{}

	for _, token := range tokens {
		switch strings.ToLower(token) {
		case "read":
			readFilter = true
		case "unread":
			unreadFilter = true
		default:
			if p.opts.CaseInsensitive {
				textTokens = append(textTokens, strings.ToLower(token))
			} else {
				textTokens = append(textTokens, token)
			}
		}
	}

	// If both read and unread specified, ignore both (contradiction)
	if readFilter && unreadFilter {
		readFilter = false
		unreadFilter = false
	}

	if readFilter && n.Unread {
		return false
	}
	if unreadFilter && !n.Unread {
		return false
	}

	// If no text tokens, match passed the read/unread filter
	if len(textTokens) == 0 {
		return true
	}

	// Each token must match at least one field (AND logic)
	for _, token := range textTokens {
		matched := false
		for _, field := range p.opts.Fields {
			value := fieldValue(n, field)
			if value == "" {
				continue
			}
			if p.opts.CaseInsensitive {
				value = strings.ToLower(value)
			}
			if strings.Contains(value, token) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return "token"
}
