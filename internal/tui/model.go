package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/biponi/notify/internal/domain"
	"github.com/biponi/notify/internal/store"
)

// Store is the slice of the notification store the panel consumes.
// The panel never talks to the REST client directly; every fetch and
// mutation goes through these intents.
type Store interface {
	Subscribe(fn store.Listener) (unsubscribe func())
	Snapshot() store.Snapshot
	FetchPage(ctx context.Context, page int, append bool) error
	FetchUnreadCount(ctx context.Context) error
	LoadMore(ctx context.Context) error
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

const opTimeout = 30 * time.Second

// Model is the bubbletea model for the notification panel.
type Model struct {
	st       Store
	snapshot store.Snapshot
	snapCh   chan store.Snapshot
	unsub    func()

	cursor   int
	offset   int
	filter   domain.Filter
	pageView bool
	width    int
	height   int
	status   string
	spin     spinner.Model
}

// NewModel creates the panel model. pageView starts the fuller list view
// with filter controls enabled.
func NewModel(st Store, pageView bool) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := &Model{
		st:       st,
		snapshot: st.Snapshot(),
		snapCh:   make(chan store.Snapshot, 64),
		pageView: pageView,
		width:    80,
		height:   24,
		spin:     sp,
	}
	m.unsub = st.Subscribe(func(snap store.Snapshot) {
		select {
		case m.snapCh <- snap:
		default:
			// Bridge channel full; drop. The next mutation re-delivers
			// a fresh snapshot.
		}
	})
	return m
}

// Init starts the subscription bridge and triggers the initial fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshot(m.snapCh),
		m.spin.Tick,
		m.dispatch(func(ctx context.Context) error {
			if err := m.st.FetchPage(ctx, 1, false); err != nil {
				return err
			}
			return m.st.FetchUnreadCount(ctx)
		}),
	)
}

// Close unsubscribes from the store. The store itself lives on; only
// this panel's bridge is torn down.
func (m *Model) Close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
}

// dispatch runs a store intent off the UI loop and surfaces failures as
// OpFailedMsg.
func (m *Model) dispatch(op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		if err := op(ctx); err != nil {
			return OpFailedMsg{Err: err}
		}
		return nil
	}
}

// visible returns the notifications after applying the current filter.
func (m *Model) visible() []domain.Notification {
	return m.filter.Apply(m.snapshot.Notifications)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		return m, nil
	case SnapshotMsg:
		m.snapshot = msg.Snapshot
		m.clampCursor()
		return m, waitForSnapshot(m.snapCh)
	case OpFailedMsg:
		m.status = msg.Err.Error()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.Close()
		return m, tea.Quit
	case "down", "j":
		return m, m.moveCursor(1)
	case "up", "k":
		m.cursor--
		m.clampCursor()
		return m, nil
	case "g", "home":
		m.cursor = 0
		m.offset = 0
		return m, nil
	case "G", "end":
		m.cursor = len(m.visible()) - 1
		m.clampCursor()
		return m, m.maybeLoadMore()
	case "enter", "r":
		if n, ok := m.selected(); ok && n.Unread {
			id := n.ID
			return m, m.dispatch(func(ctx context.Context) error {
				return m.st.MarkAsRead(ctx, id)
			})
		}
		return m, nil
	case "R":
		return m, m.dispatch(m.st.MarkAllAsRead)
	case "d":
		if n, ok := m.selected(); ok {
			id := n.ID
			return m, m.dispatch(func(ctx context.Context) error {
				return m.st.Delete(ctx, id)
			})
		}
		return m, nil
	case "f":
		if m.pageView {
			m.cycleReadFilter()
		}
		return m, nil
	case "t":
		if m.pageView {
			m.cycleTopicFilter()
		}
		return m, nil
	case "ctrl+r":
		return m, m.dispatch(func(ctx context.Context) error {
			if err := m.st.FetchPage(ctx, 1, false); err != nil {
				return err
			}
			return m.st.FetchUnreadCount(ctx)
		})
	}
	return m, nil
}

// moveCursor moves down one row; hitting the bottom of the list loads
// the next page when one is available (infinite scroll).
func (m *Model) moveCursor(delta int) tea.Cmd {
	m.cursor += delta
	m.clampCursor()
	return m.maybeLoadMore()
}

func (m *Model) maybeLoadMore() tea.Cmd {
	visible := m.visible()
	if m.cursor < len(visible)-1 {
		return nil
	}
	if m.snapshot.Loading || !m.snapshot.HasMore {
		return nil
	}
	return m.dispatch(m.st.LoadMore)
}

func (m *Model) clampCursor() {
	visible := len(m.visible())
	if m.cursor >= visible {
		m.cursor = visible - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) selected() (domain.Notification, bool) {
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return domain.Notification{}, false
	}
	return visible[m.cursor], true
}

// cycleReadFilter rotates all -> unread -> read -> all.
func (m *Model) cycleReadFilter() {
	switch m.filter.Read {
	case domain.ReadFilterAll:
		m.filter.Read = domain.ReadFilterUnread
	case domain.ReadFilterUnread:
		m.filter.Read = domain.ReadFilterRead
	default:
		m.filter.Read = domain.ReadFilterAll
	}
	m.cursor = 0
	m.offset = 0
}

// cycleTopicFilter rotates through the topics currently present,
// ending back at no filter.
func (m *Model) cycleTopicFilter() {
	topics := domain.Topics(m.snapshot.Notifications)
	if len(topics) == 0 {
		m.filter.Topic = ""
		return
	}
	if m.filter.Topic == "" {
		m.filter.Topic = topics[0]
	} else {
		next := ""
		for i, topic := range topics {
			if topic == m.filter.Topic && i+1 < len(topics) {
				next = topics[i+1]
				break
			}
		}
		m.filter.Topic = next
	}
	m.cursor = 0
	m.offset = 0
}
