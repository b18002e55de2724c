// Package push delivers real-time foreground notification messages over a
// websocket and feeds them into the notification store through a
// supervised re-arm loop.
package push

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/biponi/notify/internal/domain"
)

// PayloadNotification is the display part of a push payload.
type PayloadNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Payload is the wire shape of one foreground push message. Every field
// is optional; malformed or absent fields are defaulted rather than
// rejected, since a dropped push degrades to "stale until next poll"
// while a crash takes the whole feature down.
type Payload struct {
	Notification *PayloadNotification `json:"notification,omitempty"`
	Data         map[string]string    `json:"data,omitempty"`
}

const fallbackTitle = "New Notification"

// ToNotification converts a push payload into a domain notification,
// applying defaults for anything the payload does not carry. The result
// is always unread: a push is by definition a message the user has not
// seen yet.
func (p Payload) ToNotification(now time.Time) domain.Notification {
	n := domain.Notification{
		Topic:     domain.TopicSystem,
		Priority:  domain.PriorityNormal,
		CreatedAt: now.UTC(),
		Unread:    true,
	}

	if p.Notification != nil {
		n.Subject = p.Notification.Title
		n.Message = p.Notification.Body
	}

	if len(p.Data) > 0 {
		n.ID = p.Data["notificationId"]
		if subject := p.Data["subject"]; subject != "" {
			n.Subject = subject
		}
		if message := p.Data["message"]; message != "" {
			n.Message = message
		}
		if topic := p.Data["topic"]; topic != "" {
			n.Topic = topic
		}
		n.Priority = domain.ParsePriority(p.Data["priority"])
		n.ActionURL = p.Data["actionUrl"]
		n.ActionText = p.Data["actionText"]
		n.Data = relatedData(p.Data["relatedData"])
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Subject == "" {
		n.Subject = fallbackTitle
	}
	return n
}

// relatedData parses the relatedData JSON string leniently; anything
// unparseable yields nil rather than an error.
func relatedData(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var typed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &typed); err != nil {
		return nil
	}
	out := make(map[string]string, len(typed))
	for k, v := range typed {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
			continue
		}
		out[k] = string(v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
