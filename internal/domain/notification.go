// Package domain provides the domain layer for notifications.
// It contains the notification entity, value objects, and filtering logic.
package domain

import (
	"fmt"
	"sort"
	"time"
)

// Notification represents a single notification delivered to the user.
//
// Unread is normalized at the ingestion boundary (REST converter or push
// converter): the upstream wire shape carries two parallel read-state
// representations and they are collapsed into this one flag exactly once.
type Notification struct {
	ID         string
	Subject    string
	Message    string
	Topic      string
	Priority   Priority
	CreatedAt  time.Time
	Unread     bool
	ReadAt     *time.Time
	ActionURL  string
	ActionText string
	Data       map[string]string
}

// Priority represents the display emphasis of a notification.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid checks if the priority is one of the known values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Weight returns the relative emphasis weight of the priority.
// Higher weight means stronger visual emphasis.
func (p Priority) Weight() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	default:
		return 0
	}
}

// ParsePriority parses a string into a Priority, falling back to
// PriorityNormal for empty or unknown values. Priorities inform display
// emphasis only, so an unknown value is never an error.
func ParsePriority(s string) Priority {
	p := Priority(s)
	if !p.IsValid() {
		return PriorityNormal
	}
	return p
}

// TopicSystem is the fallback topic for payloads that carry none.
const TopicSystem = "system"

// MarkRead marks the notification as read at the given time.
func (n *Notification) MarkRead(at time.Time) {
	n.Unread = false
	t := at.UTC()
	n.ReadAt = &t
}

// MarkUnread clears the read state.
func (n *Notification) MarkUnread() {
	n.Unread = true
	n.ReadAt = nil
}

// Validate validates the notification and returns an error if invalid.
func (n *Notification) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("notification ID cannot be empty")
	}
	if n.Subject == "" && n.Message == "" {
		return fmt.Errorf("notification needs a subject or a message")
	}
	if !n.Priority.IsValid() {
		return fmt.Errorf("invalid notification priority: %s", n.Priority)
	}
	if n.CreatedAt.IsZero() {
		return fmt.Errorf("notification creation time cannot be zero")
	}
	return nil
}

// Newer reports whether n was created after other. Ties on CreatedAt are
// broken by ID so that ordering is stable across merges.
func (n *Notification) Newer(other *Notification) bool {
	if n.CreatedAt.Equal(other.CreatedAt) {
		return n.ID > other.ID
	}
	return n.CreatedAt.After(other.CreatedAt)
}

// SortNewestFirst sorts notifications in place, newest first.
func SortNewestFirst(notifications []Notification) {
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].Newer(&notifications[j])
	})
}
