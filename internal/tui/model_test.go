package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvelez/slate/internal/config"
	"github.com/nvelez/slate/internal/schedule"
)

// nopPublisher accepts every outbound mutation.
type nopPublisher struct{}

func (nopPublisher) PublishMove(schedule.Term, string, string) error            { return nil }
func (nopPublisher) PublishUpdate(schedule.Term, string, schedule.Fields) error { return nil }
func (nopPublisher) PublishAdd(schedule.Term, *schedule.Course) error           { return nil }
func (nopPublisher) PublishDelete(schedule.Term, string) error                  { return nil }
func (nopPublisher) PublishFacultyAdd(schedule.Term, string) error              { return nil }
func (nopPublisher) PublishFacultyDelete(schedule.Term, string) error           { return nil }

func newTestModel(t *testing.T) *Model {
	t.Helper()
	store := schedule.NewStore(schedule.TermFall, nopPublisher{})
	store.ReplaceAll(testCourses(), []string{"Smith"})

	m := newModel(config.Default(), store, nil, nil, make(chan tea.Msg))
	m.width = 120
	m.height = 40
	return m
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMoveFlow(t *testing.T) {
	m := newTestModel(t)
	m.cursor = position{Col: schedule.SlotIndex("TR-G"), Row: 0}

	m.handleKeyMsg(key("m"))
	if m.mode != ModeMove || m.movingID != "ACCT-281-1" {
		t.Fatalf("mode = %v, moving = %q", m.mode, m.movingID)
	}

	// Carry it one column to the right and drop it.
	m.handleKeyMsg(key("l"))
	m.handleKeyMsg(key("enter"))

	if m.mode != ModeNormal {
		t.Errorf("mode after drop = %v", m.mode)
	}
	c := m.store.Course("ACCT-281-1")
	if c == nil || c.SlotID != "TR-H" {
		t.Errorf("course slot = %+v", c)
	}
	if pos, ok := findCourse(m.cols, "ACCT-281-1"); !ok || pos.Col != schedule.SlotIndex("TR-H") {
		t.Errorf("cursor did not follow the card: %+v", pos)
	}
}

func TestMoveCancelled(t *testing.T) {
	m := newTestModel(t)
	m.cursor = position{Col: schedule.SlotIndex("TR-G"), Row: 0}

	m.handleKeyMsg(key("m"))
	m.handleKeyMsg(key("l"))
	m.handleKeyMsg(key("esc"))

	if m.mode != ModeNormal || m.movingID != "" {
		t.Errorf("cancel left mode=%v moving=%q", m.mode, m.movingID)
	}
	if c := m.store.Course("ACCT-281-1"); c.SlotID != "TR-G" {
		t.Errorf("cancelled move changed slot to %s", c.SlotID)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := newTestModel(t)
	m.cursor = position{Col: schedule.SlotIndex("TR-G"), Row: 0}

	m.handleKeyMsg(key("d"))
	if m.mode != ModeConfirmDelete {
		t.Fatalf("mode = %v", m.mode)
	}
	m.handleKeyMsg(key("n"))
	if m.store.Course("ACCT-281-1") == nil {
		t.Fatal("declined confirmation still removed the course")
	}

	m.handleKeyMsg(key("d"))
	m.handleKeyMsg(key("y"))
	if m.store.Course("ACCT-281-1") != nil {
		t.Error("confirmed delete kept the course")
	}
}

func TestUndoFromBoard(t *testing.T) {
	m := newTestModel(t)
	if _, err := m.store.Move("ACCT-281-1", "MW-C"); err != nil {
		t.Fatalf("move: %v", err)
	}
	m.refresh()

	m.handleKeyMsg(key("u"))
	if c := m.store.Course("ACCT-281-1"); c.SlotID != "TR-G" {
		t.Errorf("undo left slot %s", c.SlotID)
	}

	// Empty log is a flash, not an error.
	m.handleKeyMsg(key("u"))
	if m.flash != "nothing to undo" {
		t.Errorf("flash = %q", m.flash)
	}
}

func TestEditFlowRejectsRoomConflict(t *testing.T) {
	m := newTestModel(t)
	// Two courses share MW-B; give the first a room, then ask for the same
	// room on the second.
	if err := m.store.Update("ECON-301-1", schedule.Fields{Room: strPtr("RO-23")}); err != nil {
		t.Fatalf("seed room: %v", err)
	}
	m.refresh()

	pos, ok := findCourse(m.cols, "MGMT-210-1")
	if !ok {
		t.Fatal("MGMT-210-1 not on board")
	}
	m.cursor = pos

	m.handleKeyMsg(key("e"))
	if m.mode != ModeEdit {
		t.Fatalf("mode = %v", m.mode)
	}
	m.form.inputs[fieldRoom].SetValue("RO-23")
	m.form.setFocus(len(m.form.inputs) - 1)
	m.handleKeyMsg(key("enter"))

	if m.mode != ModeNormal {
		t.Errorf("mode = %v", m.mode)
	}
	if !m.flashWarn {
		t.Error("conflict did not warn")
	}
	if c := m.store.Course("MGMT-210-1"); c.Room != "" {
		t.Errorf("conflicting room was applied: %s", c.Room)
	}
}

func strPtr(s string) *string { return &s }
