package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/biponi/notify/internal/domain"
)

func notif(subject, message, topic string, unread bool) domain.Notification {
	return domain.Notification{
		ID:       "n1",
		Subject:  subject,
		Message:  message,
		Topic:    topic,
		Priority: domain.PriorityNormal,
		Unread:   unread,
	}
}

func TestSubstringProvider(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		n     domain.Notification
		query string
		want  bool
	}{
		{
			name:  "matches subject",
			n:     notif("Order placed", "Thanks for your purchase", "order_created", true),
			query: "Order",
			want:  true,
		},
		{
			name:  "matches message",
			n:     notif("Order placed", "Thanks for your purchase", "order_created", true),
			query: "purchase",
			want:  true,
		},
		{
			name:  "matches topic",
			n:     notif("Order placed", "Thanks", "order_created", true),
			query: "order_created",
			want:  true,
		},
		{
			name:  "no match",
			n:     notif("Order placed", "Thanks", "order_created", true),
			query: "refund",
			want:  false,
		},
		{
			name:  "case sensitive by default",
			n:     notif("Order placed", "Thanks", "order_created", true),
			query: "order placed",
			want:  false,
		},
		{
			name:  "case insensitive option",
			opts:  []Option{WithCaseInsensitive(true)},
			n:     notif("Order placed", "Thanks", "order_created", true),
			query: "ORDER PLACED",
			want:  true,
		},
		{
			name:  "empty query matches everything",
			n:     notif("Order placed", "Thanks", "order_created", true),
			query: "",
			want:  true,
		},
		{
			name:  "restricted fields skip message",
			opts:  []Option{WithFields([]string{"subject"})},
			n:     notif("Order placed", "Thanks", "order_created", true),
			query: "Thanks",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewSubstringProvider(tt.opts...)
			assert.Equal(t, tt.want, p.Match(tt.n, tt.query))
		})
	}
}

func TestRegexProvider(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		n     domain.Notification
		query string
		want  bool
	}{
		{
			name:  "pattern matches message",
			n:     notif("Payment failed", "Order #42 declined", "payment_failed", true),
			query: `#\d+`,
			want:  true,
		},
		{
			name:  "anchored pattern on subject",
			n:     notif("Payment failed", "Order #42 declined", "payment_failed", true),
			query: "^Payment",
			want:  true,
		},
		{
			name:  "invalid regex never matches",
			n:     notif("Payment failed", "Order #42 declined", "payment_failed", true),
			query: "[unclosed",
			want:  false,
		},
		{
			name:  "case sensitive by default",
			n:     notif("Payment failed", "Order #42 declined", "payment_failed", true),
			query: "PAYMENT FAILED",
			want:  false,
		},
		{
			name:  "case insensitive flag",
			opts:  []Option{WithCaseInsensitive(true)},
			n:     notif("Payment failed", "Order #42 declined", "payment_failed", true),
			query: "PAYMENT",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewRegexProvider(tt.opts...)
			assert.Equal(t, tt.want, p.Match(tt.n, tt.query))
		})
	}
}

func TestRegexProviderCachesPatterns(t *testing.T) {
	p := NewRegexProvider().(*RegexProvider)
	n := notif("Order placed", "Thanks", "order_created", true)

	assert.True(t, p.Match(n, "Order"))
	assert.True(t, p.Match(n, "Order"))
	assert.Len(t, p.cache, 1)
}

func TestTokenProvider(t *testing.T) {
	tests := []struct {
		name  string
		n     domain.Notification
		query string
		want  bool
	}{
		{
			name:  "all tokens must match",
			n:     notif("Order placed", "Thanks for your purchase", "order_created", true),
			query: "Order purchase",
			want:  true,
		},
		{
			name:  "one missing token fails",
			n:     notif("Order placed", "Thanks for your purchase", "order_created", true),
			query: "Order refund",
			want:  false,
		},
		{
			name:  "unread token filters read items",
			n:     notif("Order placed", "Thanks", "order_created", false),
			query: "unread Order",
			want:  false,
		},
		{
			name:  "unread token passes unread items",
			n:     notif("Order placed", "Thanks", "order_created", true),
			query: "unread Order",
			want:  true,
		},
		{
			name:  "read token filters unread items",
			n:     notif("Order placed", "Thanks", "order_created", true),
			query: "read",
			want:  false,
		},
		{
			name:  "contradictory read unread ignored",
			n:     notif("Order placed", "Thanks", "order_created", true),
			query: "read unread Order",
			want:  true,
		},
		{
			name:  "whitespace only matches everything",
			n:     notif("Order placed", "Thanks", "order_created", true),
			query: "   ",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewTokenProvider()
			assert.Equal(t, tt.want, p.Match(tt.n, tt.query))
		})
	}
}

func TestApply(t *testing.T) {
	items := []domain.Notification{
		notif("Order placed", "Thanks", "order_created", true),
		notif("Payment failed", "Declined", "payment_failed", true),
	}

	p := NewSubstringProvider()
	assert.Len(t, Apply(p, items, "Payment"), 1)
	assert.Len(t, Apply(p, items, ""), 2)
	assert.Empty(t, Apply(p, items, "refund"))
}

func TestProviderNames(t *testing.T) {
	assert.Equal(t, "substring", NewSubstringProvider().Name())
	assert.Equal(t, "regex", NewRegexProvider().Name())
	assert.Equal(t, "token", NewTokenProvider().Name())
}
