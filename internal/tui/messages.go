package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvelez/slate/internal/remote"
	"github.com/nvelez/slate/internal/schedule"
)

// eventMsg carries an inbound broadcast that already landed in the store.
type eventMsg struct {
	event remote.Event
}

// statusMsg carries a connection status change.
type statusMsg struct {
	status remote.Status
}

// termSwitchedMsg reports a completed term switch and resync.
type termSwitchedMsg struct {
	term schedule.Term
}

// errMsg carries an asynchronous failure for the status line.
type errMsg struct {
	err error
}

// flashClearMsg clears the transient status line text.
type flashClearMsg struct{}

// waitForEvent blocks on the board's message channel. Re-issued after every
// delivery so the channel is always drained.
func waitForEvent(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
