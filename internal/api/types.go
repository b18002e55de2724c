package api

import (
	"time"

	"github.com/biponi/notify/internal/domain"
)

// wireRecipient is the per-recipient delivery record carried by broadcast
// notifications.
type wireRecipient struct {
	UserID string     `json:"userId,omitempty"`
	Read   bool       `json:"read"`
	ReadAt *time.Time `json:"readAt,omitempty"`
}

// wireNotification is the upstream wire shape. It carries two parallel
// read-state representations: a top-level `read` flag (direct delivery)
// and a per-recipient flag (broadcast delivery). Both must be consulted;
// the dual shape is collapsed into domain.Notification.Unread here and
// nowhere else.
type wireNotification struct {
	ID         string            `json:"id"`
	Subject    string            `json:"subject"`
	Message    string            `json:"message"`
	Topic      string            `json:"topic"`
	Priority   string            `json:"priority"`
	CreatedAt  time.Time         `json:"createdAt"`
	Read       bool              `json:"read"`
	ReadAt     *time.Time        `json:"readAt,omitempty"`
	Recipients []wireRecipient   `json:"recipients,omitempty"`
	ActionURL  string            `json:"actionUrl,omitempty"`
	ActionText string            `json:"actionText,omitempty"`
	Data       map[string]string `json:"data,omitempty"`
}

// listResponse is the paginated list envelope.
type listResponse struct {
	Notifications []wireNotification `json:"notifications"`
	Page          int                `json:"page"`
	TotalPages    int                `json:"totalPages"`
	Total         int                `json:"total"`
}

// unreadCountResponse is the unread-count envelope.
type unreadCountResponse struct {
	Count int `json:"count"`
}

// ListResult is the typed result of a List call.
type ListResult struct {
	Notifications []domain.Notification
	Page          int
	TotalPages    int
	Total         int
}

// toDomain converts a wire notification into the domain entity,
// normalizing the dual read representation into the single Unread flag.
func (w *wireNotification) toDomain() domain.Notification {
	read := w.Read
	readAt := w.ReadAt
	if len(w.Recipients) > 0 {
		if w.Recipients[0].Read {
			read = true
			if readAt == nil {
				readAt = w.Recipients[0].ReadAt
			}
		}
	}
	n := domain.Notification{
		ID:         w.ID,
		Subject:    w.Subject,
		Message:    w.Message,
		Topic:      w.Topic,
		Priority:   domain.ParsePriority(w.Priority),
		CreatedAt:  w.CreatedAt,
		Unread:     !read,
		ActionURL:  w.ActionURL,
		ActionText: w.ActionText,
		Data:       w.Data,
	}
	if n.Topic == "" {
		n.Topic = domain.TopicSystem
	}
	if read {
		n.ReadAt = readAt
	}
	return n
}

func toDomainSlice(wires []wireNotification) []domain.Notification {
	out := make([]domain.Notification, 0, len(wires))
	for i := range wires {
		out = append(out, wires[i].toDomain())
	}
	return out
}

// RegisterTokenRequest is the push token registration payload.
type RegisterTokenRequest struct {
	Token    string   `json:"token"`
	Platform string   `json:"platform"`
	Device   string   `json:"device"`
	Topics   []string `json:"topics,omitempty"`
}

// topicRequest is the subscribe/unsubscribe payload.
type topicRequest struct {
	Topic string `json:"topic"`
}
