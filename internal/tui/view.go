package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/biponi/notify/internal/domain"
)

const chromeRows = 4 // header, filter line, blank, footer

func (m *Model) listHeight() int {
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View renders the panel.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterLine())
	b.WriteString("\n")

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(dimStyle.Render(m.emptyText()))
		b.WriteString("\n")
	} else {
		rows := m.listHeight()
		end := m.offset + rows
		if end > len(visible) {
			end = len(visible)
		}
		for i := m.offset; i < end; i++ {
			b.WriteString(m.renderRow(visible[i], i == m.cursor))
			b.WriteString("\n")
		}
		if m.snapshot.HasMore && end == len(visible) {
			b.WriteString(dimStyle.Render("  ↓ more"))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderHeader() string {
	title := headerStyle.Render("🔔 Notifications")
	badge := m.snapshot.Badge()
	if badge != "" {
		title += " " + badgeStyle.Render(badge)
	}
	if m.snapshot.Loading {
		title += " " + m.spin.View()
	}
	return title
}

func (m *Model) renderFilterLine() string {
	if !m.pageView {
		return ""
	}
	read := "all"
	switch m.filter.Read {
	case domain.ReadFilterUnread:
		read = "unread"
	case domain.ReadFilterRead:
		read = "read"
	}
	topic := m.filter.Topic
	if topic == "" {
		topic = "all topics"
	}
	return dimStyle.Render(fmt.Sprintf("filter: %s · %s", read, topic))
}

func (m *Model) emptyText() string {
	if m.snapshot.Loading {
		return "  loading…"
	}
	if m.filter.Read != domain.ReadFilterAll || m.filter.Topic != "" {
		return "  nothing matches the current filter"
	}
	return "  no notifications"
}

func (m *Model) renderRow(n domain.Notification, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}

	mark := "  "
	if n.Unread {
		mark = unreadMarkStyle.Render("● ")
	}

	style := TopicStyleFor(n.Topic)
	subject := n.Subject
	if subject == "" {
		subject = n.Message
	}
	line := fmt.Sprintf("%s%s%s %s", cursor, mark, style.Icon, subject)
	line = priorityStyleFor(n.Priority).Render(line)

	age := dimStyle.Render(" " + relativeAge(n.CreatedAt, time.Now()))
	return truncate(line+age, m.width)
}

func (m *Model) renderFooter() string {
	help := "r mark read · R mark all · d delete · q quit"
	if m.pageView {
		help = "f read filter · t topic · " + help
	}
	out := dimStyle.Render(help)
	if m.status != "" {
		out += "\n" + statusStyle.Render(m.status)
	}
	return out
}

func priorityStyleFor(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityUrgent:
		return urgentStyle
	case domain.PriorityHigh:
		return highStyle
	case domain.PriorityLow:
		return lowStyle
	default:
		return normalStyle
	}
}

// relativeAge renders a compact age like "5m" or "3d".
func relativeAge(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
