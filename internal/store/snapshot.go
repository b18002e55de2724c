package store

import "github.com/biponi/notify/internal/domain"

// Snapshot is an immutable view of the store state handed to listeners.
type Snapshot struct {
	// Notifications is the held collection, newest first.
	Notifications []domain.Notification
	// UnreadCount is the current unread total.
	UnreadCount int
	// Loading reports whether a fetch is in flight.
	Loading bool
	// Page is the last fetched page number.
	Page int
	// HasMore reports whether further pages exist.
	HasMore bool
	// PushToken is the last obtained transport registration token,
	// empty when push is unavailable.
	PushToken string
	// Err is the last fetch error, nil after a successful fetch.
	Err error
}

// Badge returns the unread count formatted for the bell badge,
// capped at "99+".
func (s Snapshot) Badge() string {
	return FormatBadge(s.UnreadCount)
}
