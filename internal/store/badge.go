package store

import "strconv"

// badgeCap is the largest count rendered exactly; anything above shows "99+".
const badgeCap = 99

// FormatBadge formats an unread count for display, capped at "99+".
// A zero or negative count renders as the empty string so status bars
// can hide the badge entirely.
func FormatBadge(count int) string {
	if count <= 0 {
		return ""
	}
	if count > badgeCap {
		return "99+"
	}
	return strconv.Itoa(count)
}
