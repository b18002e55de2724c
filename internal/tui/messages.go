// Package tui implements the notification bell and panel as a bubbletea
// program subscribing to the notification store.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/biponi/notify/internal/store"
)

// SnapshotMsg carries a fresh store snapshot into the tea runtime.
type SnapshotMsg struct {
	Snapshot store.Snapshot
}

// OpFailedMsg is sent when a dispatched store intent fails. The store
// has already reverted its optimistic change by then; the panel only
// surfaces the message.
type OpFailedMsg struct {
	Err error
}

// waitForSnapshot re-arms the subscription bridge: it blocks on the
// snapshot channel and hands the next snapshot to Update, which issues
// the command again.
func waitForSnapshot(ch <-chan store.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return SnapshotMsg{Snapshot: snap}
	}
}
