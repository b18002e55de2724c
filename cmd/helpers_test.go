package cmd

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/biponi/notify/internal/api"
	"github.com/biponi/notify/internal/colors"
	"github.com/biponi/notify/internal/domain"
)

// fakeAPI implements the per-command client interfaces for tests.
type fakeAPI struct {
	listResult *api.ListResult
	unread     int
	failWith   error

	calls []string
	sent  []api.ComposeRequest
}

func (f *fakeAPI) record(name string) error {
	f.calls = append(f.calls, name)
	return f.failWith
}

func (f *fakeAPI) List(ctx context.Context, page, limit int, unreadOnly bool) (*api.ListResult, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	if f.listResult == nil {
		return &api.ListResult{}, nil
	}
	return f.listResult, nil
}

func (f *fakeAPI) UnreadCount(ctx context.Context) (int, error) {
	if err := f.record("unread"); err != nil {
		return 0, err
	}
	return f.unread, nil
}

func (f *fakeAPI) MarkRead(ctx context.Context, id string) error  { return f.record("markRead:" + id) }
func (f *fakeAPI) MarkAllRead(ctx context.Context) error          { return f.record("markAll") }
func (f *fakeAPI) Delete(ctx context.Context, id string) error    { return f.record("delete:" + id) }
func (f *fakeAPI) SubscribeTopic(ctx context.Context, topic string) error {
	return f.record("subscribe:" + topic)
}
func (f *fakeAPI) UnsubscribeTopic(ctx context.Context, topic string) error {
	return f.record("unsubscribe:" + topic)
}
func (f *fakeAPI) RegisterToken(ctx context.Context, token string, topics []string) error {
	return f.record("registerToken:" + token)
}
func (f *fakeAPI) Send(ctx context.Context, req api.ComposeRequest) error {
	f.sent = append(f.sent, req)
	return f.record("send")
}

// executeCmd runs a command with args and captures its output. Console
// helper output is captured alongside it.
func executeCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	colors.SetOutput(buf, buf)
	t.Cleanup(func() { colors.SetOutput(os.Stdout, os.Stderr) })

	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func sampleListResult() *api.ListResult {
	created := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	return &api.ListResult{
		Notifications: []domain.Notification{
			{ID: "n1", Subject: "Order placed", Topic: "order_created", Priority: domain.PriorityNormal, CreatedAt: created, Unread: true},
			{ID: "n2", Subject: "Payment failed", Topic: "payment_failed", Priority: domain.PriorityUrgent, CreatedAt: created.Add(-time.Hour), Unread: false},
		},
		Total:      2,
		Page:       1,
		TotalPages: 1,
	}
}
