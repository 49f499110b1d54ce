package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvelez/slate/internal/schedule"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeMove:
		return m.handleMoveKey(msg)
	case ModeEdit, ModeAdd:
		return m.handleFormKey(msg)
	case ModeConfirmDelete:
		return m.handleConfirmKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "h", "left":
		m.cursor = nextOccupied(m.cols, m.cursor, -1)
		m.ensureVisible()
	case "l", "right":
		m.cursor = nextOccupied(m.cols, m.cursor, 1)
		m.ensureVisible()
	case "j", "down":
		m.cursor = clamp(m.cols, position{Col: m.cursor.Col, Row: m.cursor.Row + 1})
	case "k", "up":
		m.cursor = clamp(m.cols, position{Col: m.cursor.Col, Row: m.cursor.Row - 1})

	case "m", " ":
		if c := m.selected(); c != nil {
			m.mode = ModeMove
			m.movingID = c.ID
			m.moveCol = m.cursor.Col
		}

	case "enter", "e":
		if c := m.selected(); c != nil {
			m.mode = ModeEdit
			m.form = newEditForm(c)
		}

	case "a":
		m.mode = ModeAdd
		m.form = newAddForm()

	case "d":
		if c := m.selected(); c != nil {
			m.mode = ModeConfirmDelete
			m.deleteID = c.ID
		}

	case "u":
		return m, m.undo()

	case "t":
		term := schedule.TermFall
		if m.store.Term() == schedule.TermFall {
			term = schedule.TermSpring
		}
		return m, m.switchTermCmd(term)

	case "r":
		return m, tea.Batch(m.resyncCmd(), m.setFlash("resyncing", false))
	}
	return m, nil
}

func (m *Model) handleMoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "m", "q":
		m.mode = ModeNormal
		m.movingID = ""

	case "h", "left":
		if m.moveCol > 0 {
			m.moveCol--
			m.ensureColVisible(m.moveCol)
		}
	case "l", "right":
		if m.moveCol < len(m.cols)-1 {
			m.moveCol++
			m.ensureColVisible(m.moveCol)
		}

	case "enter":
		id := m.movingID
		target := m.cols[m.moveCol].slotID
		m.mode = ModeNormal
		m.movingID = ""

		res, err := m.store.Move(id, target)
		m.refresh()
		if pos, ok := findCourse(m.cols, id); ok {
			m.cursor = pos
			m.ensureVisible()
		}
		switch {
		case errors.Is(err, schedule.ErrSyncUnavailable):
			return m, m.setFlash("moved locally, sync unavailable", true)
		case err != nil:
			return m, m.setFlash(err.Error(), true)
		case res.RoomCleared:
			return m, m.setFlash(fmt.Sprintf("room %s cleared to make space", res.ClearedRoom), true)
		}
		return m, m.setFlash("moved", false)
	}
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.deleteID
		m.mode = ModeNormal
		m.deleteID = ""
		err := m.store.Remove(id)
		m.refresh()
		switch {
		case errors.Is(err, schedule.ErrSyncUnavailable):
			return m, m.setFlash("removed locally, sync unavailable", true)
		case err != nil:
			return m, m.setFlash(err.Error(), true)
		}
		return m, m.setFlash("removed "+id, false)

	case "n", "esc", "q":
		m.mode = ModeNormal
		m.deleteID = ""
	}
	return m, nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.form = nil
		return m, nil

	case "tab", "down":
		m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form.prev()
		return m, nil

	case "enter":
		if !m.form.onLast() {
			m.form.next()
			return m, nil
		}
		return m.submitForm()
	}
	return m, m.form.update(msg)
}

func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	m.form = nil

	if m.mode == ModeAdd {
		m.mode = ModeNormal
		fields, err := f.addFields()
		if err != nil {
			return m, m.setFlash(err.Error(), true)
		}
		course, err := m.store.Add(fields)
		m.refresh()
		switch {
		case errors.Is(err, schedule.ErrSyncUnavailable):
			return m, m.setFlash("added locally, sync unavailable", true)
		case err != nil:
			return m, m.setFlash(err.Error(), true)
		}
		if pos, ok := findCourse(m.cols, course.ID); ok {
			m.cursor = pos
			m.ensureVisible()
		}
		return m, m.setFlash("added "+course.Label(), false)
	}

	m.mode = ModeNormal
	fields := f.editFields()
	if fields.IsZero() {
		return m, nil
	}
	err := m.store.Update(f.courseID, fields)
	m.refresh()

	var conflict *schedule.RoomConflictError
	switch {
	case errors.As(err, &conflict):
		return m, m.setFlash(fmt.Sprintf("room %s is taken by %s", conflict.Room, conflict.Blocking.Label()), true)
	case errors.Is(err, schedule.ErrSyncUnavailable):
		return m, m.setFlash("updated locally, sync unavailable", true)
	case err != nil:
		return m, m.setFlash(err.Error(), true)
	}
	return m, m.setFlash("updated", false)
}

// undo reverses the latest recorded mutation. Restores bypass the conflict
// detector, so the only failures are an empty log and a down link.
func (m *Model) undo() tea.Cmd {
	action, err := m.store.Undo()
	m.refresh()

	switch {
	case errors.Is(err, schedule.ErrNothingToUndo):
		return m.setFlash("nothing to undo", true)
	case errors.Is(err, schedule.ErrSyncUnavailable):
		return m.setFlash("undid "+undoText(action)+" locally, sync unavailable", true)
	case err != nil:
		return m.setFlash(err.Error(), true)
	}
	if pos, ok := findCourse(m.cols, action.CourseID); ok {
		m.cursor = pos
		m.ensureVisible()
	}
	return m.setFlash("undid "+undoText(action), false)
}

func undoText(a schedule.Action) string {
	switch a.Kind {
	case schedule.ActionMove:
		return "move of " + a.Label
	case schedule.ActionUpdate:
		return "edit of " + a.Label
	case schedule.ActionAdd:
		return "add of " + a.Label
	default:
		return "last change"
	}
}

// ensureVisible scrolls the viewport horizontally so the cursor column is on
// screen.
func (m *Model) ensureVisible() {
	m.ensureColVisible(m.cursor.Col)
}

func (m *Model) ensureColVisible(col int) {
	visible := m.visibleCols()
	if visible < 1 {
		visible = 1
	}
	if col < m.scroll {
		m.scroll = col
	}
	if col >= m.scroll+visible {
		m.scroll = col - visible + 1
	}
}

func (m *Model) visibleCols() int {
	if m.width <= 0 {
		return 4
	}
	return m.width / colWidth
}
