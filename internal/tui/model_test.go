package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biponi/notify/internal/domain"
	"github.com/biponi/notify/internal/store"
)

type fakeStore struct {
	snapshot store.Snapshot
	calls    []string
	failWith error
}

func (f *fakeStore) Subscribe(fn store.Listener) func() { return func() {} }
func (f *fakeStore) Snapshot() store.Snapshot           { return f.snapshot }

func (f *fakeStore) record(name string) error {
	f.calls = append(f.calls, name)
	return f.failWith
}

func (f *fakeStore) FetchPage(ctx context.Context, page int, append bool) error {
	return f.record("fetchPage")
}
func (f *fakeStore) FetchUnreadCount(ctx context.Context) error { return f.record("fetchUnread") }
func (f *fakeStore) LoadMore(ctx context.Context) error         { return f.record("loadMore") }
func (f *fakeStore) MarkAsRead(ctx context.Context, id string) error {
	return f.record("markRead:" + id)
}
func (f *fakeStore) MarkAllAsRead(ctx context.Context) error { return f.record("markAll") }
func (f *fakeStore) Delete(ctx context.Context, id string) error {
	return f.record("delete:" + id)
}

func sampleSnapshot() store.Snapshot {
	now := time.Now()
	return store.Snapshot{
		Notifications: []domain.Notification{
			{ID: "n1", Subject: "Order placed", Topic: "order_created", Priority: domain.PriorityNormal, CreatedAt: now, Unread: true},
			{ID: "n2", Subject: "Payment failed", Topic: "payment_failed", Priority: domain.PriorityUrgent, CreatedAt: now.Add(-time.Hour), Unread: true},
			{ID: "n3", Subject: "Ticket closed", Topic: "ticket_assigned", Priority: domain.PriorityLow, CreatedAt: now.Add(-2 * time.Hour), Unread: false},
		},
		UnreadCount: 2,
	}
}

// runCmd executes a dispatched command synchronously and feeds any
// resulting message back through Update.
func runCmd(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	if msg := cmd(); msg != nil {
		m, _ = m.Update(msg)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestMarkReadDispatchesForSelection(t *testing.T) {
	st := &fakeStore{snapshot: sampleSnapshot()}
	m := NewModel(st, false)

	_, cmd := m.Update(key("r"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{"markRead:n1"}, st.calls)
}

func TestMarkReadSkipsAlreadyRead(t *testing.T) {
	st := &fakeStore{snapshot: sampleSnapshot()}
	m := NewModel(st, false)
	m.cursor = 2 // n3 is read

	_, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Empty(t, st.calls)
}

func TestDeleteDispatchesSelectedID(t *testing.T) {
	st := &fakeStore{snapshot: sampleSnapshot()}
	m := NewModel(st, false)
	m.Update(key("down"))

	_, cmd := m.Update(key("d"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{"delete:n2"}, st.calls)
}

func TestMarkAllDispatches(t *testing.T) {
	st := &fakeStore{snapshot: sampleSnapshot()}
	m := NewModel(st, false)

	_, cmd := m.Update(key("R"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{"markAll"}, st.calls)
}

func TestCursorBottomLoadsMore(t *testing.T) {
	snap := sampleSnapshot()
	snap.HasMore = true
	st := &fakeStore{snapshot: snap}
	m := NewModel(st, false)
	m.cursor = 2

	_, cmd := m.Update(key("down"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{"loadMore"}, st.calls)
}

func TestCursorBottomNoMorePages(t *testing.T) {
	st := &fakeStore{snapshot: sampleSnapshot()} // HasMore false
	m := NewModel(st, false)
	m.cursor = 2

	_, cmd := m.Update(key("down"))
	assert.Nil(t, cmd)
	assert.Empty(t, st.calls)
	assert.Equal(t, 2, m.cursor, "cursor stays on last row")
}

func TestSnapshotMsgUpdatesAndRearms(t *testing.T) {
	st := &fakeStore{}
	m := NewModel(st, false)

	snap := sampleSnapshot()
	updated, cmd := m.Update(SnapshotMsg{Snapshot: snap})
	require.NotNil(t, cmd, "must re-arm the snapshot bridge")

	got := updated.(*Model)
	assert.Len(t, got.snapshot.Notifications, 3)
	assert.Equal(t, 2, got.snapshot.UnreadCount)
}

func TestSnapshotShrinkClampsCursor(t *testing.T) {
	st := &fakeStore{snapshot: sampleSnapshot()}
	m := NewModel(st, false)
	m.cursor = 2

	snap := sampleSnapshot()
	snap.Notifications = snap.Notifications[:1]
	m.Update(SnapshotMsg{Snapshot: snap})

	assert.Equal(t, 0, m.cursor)
}

func TestOpFailureShowsStatus(t *testing.T) {
	st := &fakeStore{snapshot: sampleSnapshot(), failWith: errors.New("server unavailable")}
	m := NewModel(st, false)

	updated, cmd := m.Update(key("R"))
	require.NotNil(t, cmd)
	updated = runCmd(t, updated, cmd)

	view := updated.View()
	assert.Contains(t, view, "server unavailable")
}

func TestReadFilterCycle(t *testing.T) {
	st := &fakeStore{snapshot: sampleSnapshot()}
	m := NewModel(st, true)

	m.Update(key("f"))
	assert.Equal(t, domain.ReadFilterUnread, m.filter.Read)
	assert.Len(t, m.visible(), 2)

	m.Update(key("f"))
	assert.Equal(t, domain.ReadFilterRead, m.filter.Read)
	assert.Len(t, m.visible(), 1)

	m.Update(key("f"))
	assert.Equal(t, domain.ReadFilterAll, m.filter.Read)
	assert.Len(t, m.visible(), 3)
}

func TestReadFilterIgnoredInPanelMode(t *testing.T) {
	st := &fakeStore{snapshot: sampleSnapshot()}
	m := NewModel(st, false)

	m.Update(key("f"))
	assert.Equal(t, domain.ReadFilterAll, m.filter.Read)
}

func TestTopicFilterCycle(t *testing.T) {
	st := &fakeStore{snapshot: sampleSnapshot()}
	m := NewModel(st, true)

	m.Update(key("t"))
	assert.Equal(t, "order_created", m.filter.Topic)
	assert.Len(t, m.visible(), 1)

	m.Update(key("t"))
	assert.Equal(t, "payment_failed", m.filter.Topic)

	m.Update(key("t"))
	assert.Equal(t, "ticket_assigned", m.filter.Topic)

	m.Update(key("t"))
	assert.Equal(t, "", m.filter.Topic, "cycle ends back at no filter")
}

func TestViewRendersBadgeAndRows(t *testing.T) {
	st := &fakeStore{snapshot: sampleSnapshot()}
	m := NewModel(st, false)

	view := m.View()
	assert.Contains(t, view, "Notifications")
	assert.Contains(t, view, "2")
	assert.Contains(t, view, "Order placed")
	assert.Contains(t, view, "Payment failed")
}

func TestViewBadgeCapped(t *testing.T) {
	snap := sampleSnapshot()
	snap.UnreadCount = 145
	st := &fakeStore{snapshot: snap}
	m := NewModel(st, false)

	assert.Contains(t, m.View(), "99+")
}

func TestViewEmptyState(t *testing.T) {
	st := &fakeStore{}
	m := NewModel(st, false)

	assert.Contains(t, m.View(), "no notifications")
}

func TestViewFilteredEmptyState(t *testing.T) {
	snap := sampleSnapshot()
	for i := range snap.Notifications {
		snap.Notifications[i].Unread = true
	}
	st := &fakeStore{snapshot: snap}
	m := NewModel(st, true)
	m.Update(key("f")) // unread
	m.Update(key("f")) // read, nothing matches

	assert.Contains(t, m.View(), "nothing matches")
}

func TestRelativeAge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"just now", now.Add(-10 * time.Second), "now"},
		{"minutes", now.Add(-5 * time.Minute), "5m"},
		{"hours", now.Add(-3 * time.Hour), "3h"},
		{"days", now.Add(-49 * time.Hour), "2d"},
		{"zero time", time.Time{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeAge(tt.at, now))
		})
	}
}

func TestQuitClosesSubscription(t *testing.T) {
	st := &fakeStore{snapshot: sampleSnapshot()}
	m := NewModel(st, false)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, strings.Contains(m.View(), "Notifications"))
}
