package tui

import "github.com/charmbracelet/lipgloss"

// TopicStyle is the icon and color rendered for a notification topic.
type TopicStyle struct {
	Icon  string
	Color lipgloss.Color
}

// topicStyles maps known topics to their iconography. Topics are an open
// set extended server-side, so lookups always go through TopicStyleFor,
// which falls back to defaultTopicStyle for anything unknown.
var topicStyles = map[string]TopicStyle{
	"order_created":   {Icon: "🛒", Color: lipgloss.Color("42")},
	"order_cancelled": {Icon: "✖", Color: lipgloss.Color("203")},
	"payment_failed":  {Icon: "⚠", Color: lipgloss.Color("208")},
	"payment_settled": {Icon: "💳", Color: lipgloss.Color("42")},
	"ticket_assigned": {Icon: "🎫", Color: lipgloss.Color("75")},
	"stock_low":       {Icon: "📦", Color: lipgloss.Color("214")},
	"delivery_update": {Icon: "🚚", Color: lipgloss.Color("75")},
	"campaign":        {Icon: "📣", Color: lipgloss.Color("135")},
	"system":          {Icon: "ℹ", Color: lipgloss.Color("245")},
}

var defaultTopicStyle = TopicStyle{Icon: "•", Color: lipgloss.Color("250")}

// TopicStyleFor returns the style for a topic, with an unconditional
// fallback for unknown topics.
func TopicStyleFor(topic string) TopicStyle {
	if style, ok := topicStyles[topic]; ok {
		return style
	}
	return defaultTopicStyle
}

// Priority emphasis styles. Priorities only affect presentation.
var (
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	normalStyle = lipgloss.NewStyle()
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
)

var (
	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("196")).
			Padding(0, 1).
			Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237"))
	unreadMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))
)
