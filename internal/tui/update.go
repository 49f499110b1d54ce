package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvelez/slate/internal/remote"
	"github.com/nvelez/slate/internal/schedule"
)

const (
	cacheTimeout  = 5 * time.Second
	resyncTimeout = 15 * time.Second
)

// Update is the single message dispatcher. Key handling is mode-specific;
// everything else is shared.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case eventMsg:
		m.refresh()
		cmds := []tea.Cmd{waitForEvent(m.events)}
		if msg.event.Kind == remote.KindFullSync || msg.event.Kind == remote.KindDataRestored {
			cmds = append(cmds, m.saveCacheCmd())
		}
		return m, tea.Batch(cmds...)

	case statusMsg:
		prev := m.status
		m.status = msg.status
		cmds := []tea.Cmd{waitForEvent(m.events)}
		if msg.status == remote.StatusConnected && prev != remote.StatusConnected {
			// Reconnect: there is no backlog replay, so pull a fresh snapshot.
			cmds = append(cmds, m.resyncCmd())
		}
		return m, tea.Batch(cmds...)

	case termSwitchedMsg:
		m.cursor = position{}
		m.scroll = 0
		m.refresh()
		return m, tea.Batch(m.setFlash("switched to "+string(msg.term), false), m.saveCacheCmd())

	case errMsg:
		if msg.err == nil {
			return m, waitForEvent(m.events)
		}
		m.refresh()
		if errors.Is(msg.err, schedule.ErrSyncUnavailable) {
			return m, tea.Batch(waitForEvent(m.events), m.setFlash("sync unavailable, change kept locally", true))
		}
		return m, tea.Batch(waitForEvent(m.events), m.setFlash(msg.err.Error(), true))

	case flashClearMsg:
		m.flash = ""
		m.flashWarn = false
		return m, nil
	}

	if m.mode == ModeEdit || m.mode == ModeAdd {
		return m, m.form.update(msg)
	}
	return m, nil
}

// saveCacheCmd persists the current mirror for offline startup.
func (m *Model) saveCacheCmd() tea.Cmd {
	if m.cache == nil {
		return nil
	}
	term := m.store.Term()
	courses := m.store.Courses()
	faculty := m.store.Faculty()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
		defer cancel()
		if err := m.cache.SaveSnapshot(ctx, term, courses, faculty); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// resyncCmd replaces the mirror with a fresh authority snapshot.
func (m *Model) resyncCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resyncTimeout)
		defer cancel()
		if err := m.adapter.Resync(ctx); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// switchTermCmd flips the active term and resyncs; the undo log does not
// survive the switch.
func (m *Model) switchTermCmd(term schedule.Term) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resyncTimeout)
		defer cancel()
		if err := m.adapter.SwitchTerm(ctx, term); err != nil {
			return errMsg{err}
		}
		return termSwitchedMsg{term}
	}
}
