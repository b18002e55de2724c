package domain

// ReadFilter selects notifications by read state.
type ReadFilter string

const (
	ReadFilterAll    ReadFilter = ""
	ReadFilterRead   ReadFilter = "read"
	ReadFilterUnread ReadFilter = "unread"
)

// IsValid checks if the read filter is a known value.
func (f ReadFilter) IsValid() bool {
	switch f {
	case ReadFilterAll, ReadFilterRead, ReadFilterUnread:
		return true
	default:
		return false
	}
}

// Filter holds the criteria for selecting notifications.
// Empty fields match everything.
type Filter struct {
	Read  ReadFilter
	Topic string
}

// Matches checks if the notification matches the filter criteria.
func (f Filter) Matches(n *Notification) bool {
	if f.Topic != "" && n.Topic != f.Topic {
		return false
	}
	switch f.Read {
	case ReadFilterRead:
		return !n.Unread
	case ReadFilterUnread:
		return n.Unread
	}
	return true
}

// Apply returns the notifications matching the filter, preserving order.
func (f Filter) Apply(notifications []Notification) []Notification {
	if f == (Filter{}) {
		return notifications
	}
	out := make([]Notification, 0, len(notifications))
	for i := range notifications {
		if f.Matches(&notifications[i]) {
			out = append(out, notifications[i])
		}
	}
	return out
}

// CountUnread returns the number of unread notifications.
func CountUnread(notifications []Notification) int {
	count := 0
	for i := range notifications {
		if notifications[i].Unread {
			count++
		}
	}
	return count
}

// Topics returns the distinct topics present, in first-seen order.
func Topics(notifications []Notification) []string {
	seen := make(map[string]bool)
	var topics []string
	for i := range notifications {
		t := notifications[i].Topic
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		topics = append(topics, t)
	}
	return topics
}
