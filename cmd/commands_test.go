package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnreadPrintsCount(t *testing.T) {
	client := &fakeAPI{unread: 7}
	cmd := NewUnreadCmd(client)

	out, err := executeCmd(t, cmd)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestUnreadBadge(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  string
	}{
		{"regular count", 7, "7\n"},
		{"capped above 99", 145, "99+\n"},
		{"zero is empty", 0, "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeAPI{unread: tt.count}
			cmd := NewUnreadCmd(client)

			out, err := executeCmd(t, cmd, "--badge")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestMarkReadSingleID(t *testing.T) {
	client := &fakeAPI{}
	cmd := NewMarkReadCmd(client)

	out, err := executeCmd(t, cmd, "n1")
	require.NoError(t, err)
	assert.Equal(t, []string{"markRead:n1"}, client.calls)
	assert.Contains(t, out, "Marked n1 as read")
}

func TestMarkReadMultipleIDs(t *testing.T) {
	client := &fakeAPI{}
	cmd := NewMarkReadCmd(client)

	_, err := executeCmd(t, cmd, "n1", "n2", "n3")
	require.NoError(t, err)
	assert.Equal(t, []string{"markRead:n1", "markRead:n2", "markRead:n3"}, client.calls)
}

func TestMarkReadRequiresID(t *testing.T) {
	client := &fakeAPI{}
	cmd := NewMarkReadCmd(client)

	_, err := executeCmd(t, cmd)
	require.Error(t, err)
	assert.Empty(t, client.calls)
}

func TestMarkAllRead(t *testing.T) {
	client := &fakeAPI{}
	cmd := NewMarkAllReadCmd(client)

	out, err := executeCmd(t, cmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"markAll"}, client.calls)
	assert.Contains(t, out, "All notifications marked as read")
}

func TestMarkAllReadSurfacesError(t *testing.T) {
	client := &fakeAPI{failWith: errors.New("server unavailable")}
	cmd := NewMarkAllReadCmd(client)

	_, err := executeCmd(t, cmd)
	require.Error(t, err)
}

func TestDelete(t *testing.T) {
	client := &fakeAPI{}
	cmd := NewDeleteCmd(client)

	out, err := executeCmd(t, cmd, "n9")
	require.NoError(t, err)
	assert.Equal(t, []string{"delete:n9"}, client.calls)
	assert.Contains(t, out, "Notification n9 deleted")
}

func TestTopicsSubscribe(t *testing.T) {
	client := &fakeAPI{}
	cmd := NewTopicsCmd(client)

	out, err := executeCmd(t, cmd, "subscribe", "stock_low")
	require.NoError(t, err)
	assert.Equal(t, []string{"subscribe:stock_low"}, client.calls)
	assert.Contains(t, out, "Subscribed to stock_low")
}

func TestTopicsUnsubscribe(t *testing.T) {
	client := &fakeAPI{}
	cmd := NewTopicsCmd(client)

	_, err := executeCmd(t, cmd, "unsubscribe", "campaign")
	require.NoError(t, err)
	assert.Equal(t, []string{"unsubscribe:campaign"}, client.calls)
}

func TestSendWithFlags(t *testing.T) {
	client := &fakeAPI{}
	cmd := NewSendCmd(client)

	out, err := executeCmd(t, cmd,
		"--subject", "Stock alert",
		"--message", "SKU 42 is low",
		"--topic", "stock_low",
		"--priority", "high",
		"--to", "user-1,user-2",
	)
	require.NoError(t, err)
	require.Len(t, client.sent, 1)

	sent := client.sent[0]
	assert.Equal(t, "Stock alert", sent.Subject)
	assert.Equal(t, "stock_low", sent.Topic)
	assert.Equal(t, "high", sent.Priority)
	assert.Equal(t, []string{"user-1", "user-2"}, sent.Recipients)
	assert.Equal(t, []string{"in_app"}, sent.Channels)
	assert.Contains(t, out, "Notification sent")
}

func TestSendBroadcast(t *testing.T) {
	client := &fakeAPI{}
	cmd := NewSendCmd(client)

	_, err := executeCmd(t, cmd,
		"--subject", "Maintenance",
		"--message", "Scheduled downtime at 02:00 UTC",
		"--broadcast",
	)
	require.NoError(t, err)
	require.Len(t, client.sent, 1)
	assert.True(t, client.sent[0].Broadcast)
	assert.Empty(t, client.sent[0].Recipients)
}

func TestSendRejectsMissingMessage(t *testing.T) {
	client := &fakeAPI{}
	cmd := NewSendCmd(client)

	_, err := executeCmd(t, cmd, "--subject", "No body", "--broadcast")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid compose request")
	assert.Empty(t, client.sent)
}

func TestSendRejectsRecipientsWithBroadcast(t *testing.T) {
	client := &fakeAPI{}
	cmd := NewSendCmd(client)

	_, err := executeCmd(t, cmd,
		"--subject", "Conflict",
		"--message", "both targets set",
		"--broadcast",
		"--to", "user-1",
	)
	require.Error(t, err)
	assert.Empty(t, client.sent)
}

func TestSendRejectsBadPriority(t *testing.T) {
	client := &fakeAPI{}
	cmd := NewSendCmd(client)

	_, err := executeCmd(t, cmd,
		"--subject", "Bad priority",
		"--message", "body",
		"--broadcast",
		"--priority", "asap",
	)
	require.Error(t, err)
	assert.Empty(t, client.sent)
}

func TestVersion(t *testing.T) {
	out, err := executeCmd(t, NewVersionCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "biponi-notify v")
}
