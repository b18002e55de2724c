package api

import (
	"context"
	"fmt"
	"net/url"
	"runtime"
	"strconv"
)

// List fetches one page of notifications, newest first.
func (c *Client) List(ctx context.Context, page, limit int, unreadOnly bool) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if unreadOnly {
		query.Set("unreadOnly", "true")
	}

	var resp listResponse
	if err := c.get(ctx, "/list?"+query.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return &ListResult{
		Notifications: toDomainSlice(resp.Notifications),
		Page:          resp.Page,
		TotalPages:    resp.TotalPages,
		Total:         resp.Total,
	}, nil
}

// UnreadCount fetches the server's unread notification count.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp unreadCountResponse
	if err := c.get(ctx, "/unread-count", &resp); err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return resp.Count, nil
}

// MarkRead marks a single notification as read.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("mark read: notification ID cannot be empty")
	}
	if err := c.put(ctx, "/"+url.PathEscape(id)+"/read", nil, nil); err != nil {
		return fmt.Errorf("mark read %s: %w", id, err)
	}
	return nil
}

// MarkAllRead marks every notification as read.
func (c *Client) MarkAllRead(ctx context.Context) error {
	if err := c.put(ctx, "/mark-all-read", nil, nil); err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}

// Delete removes a notification.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete: notification ID cannot be empty")
	}
	if err := c.delete(ctx, "/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// RegisterToken registers a push token with device metadata and the
// default topic subscriptions.
func (c *Client) RegisterToken(ctx context.Context, token string, topics []string) error {
	if token == "" {
		return fmt.Errorf("register token: token cannot be empty")
	}
	hostname := deviceName()
	req := RegisterTokenRequest{
		Token:    token,
		Platform: runtime.GOOS,
		Device:   hostname,
		Topics:   topics,
	}
	if err := c.post(ctx, "/register-token", req, nil); err != nil {
		return fmt.Errorf("register token: %w", err)
	}
	c.logger.Info("push token registered", "token", token, "device", hostname)
	return nil
}

// SubscribeTopic subscribes the current user to a topic.
func (c *Client) SubscribeTopic(ctx context.Context, topic string) error {
	if topic == "" {
		return fmt.Errorf("subscribe: topic cannot be empty")
	}
	if err := c.post(ctx, "/subscribe-topic", topicRequest{Topic: topic}, nil); err != nil {
		return fmt.Errorf("subscribe topic %s: %w", topic, err)
	}
	return nil
}

// UnsubscribeTopic unsubscribes the current user from a topic.
func (c *Client) UnsubscribeTopic(ctx context.Context, topic string) error {
	if topic == "" {
		return fmt.Errorf("unsubscribe: topic cannot be empty")
	}
	if err := c.post(ctx, "/unsubscribe-topic", topicRequest{Topic: topic}, nil); err != nil {
		return fmt.Errorf("unsubscribe topic %s: %w", topic, err)
	}
	return nil
}

// Send composes and sends a notification. Admin only; the request is
// validated client-side before it goes out.
func (c *Client) Send(ctx context.Context, req ComposeRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	if err := c.post(ctx, "/send", req, nil); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}
