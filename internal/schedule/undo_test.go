package schedule

import (
	"errors"
	"fmt"
	"testing"
)

func TestUndoLog(t *testing.T) {
	t.Run("newest first, LIFO pop", func(t *testing.T) {
		var l UndoLog
		l.Record(Action{Kind: ActionMove, CourseID: "a"})
		l.Record(Action{Kind: ActionMove, CourseID: "b"})

		a, ok := l.Pop()
		if !ok || a.CourseID != "b" {
			t.Errorf("got %v %v, want b", a.CourseID, ok)
		}
		a, _ = l.Pop()
		if a.CourseID != "a" {
			t.Errorf("got %v, want a", a.CourseID)
		}
		if _, ok := l.Pop(); ok {
			t.Error("pop on empty log should report false")
		}
	})

	t.Run("caps at 50 with FIFO eviction", func(t *testing.T) {
		var l UndoLog
		for i := 0; i < 51; i++ {
			l.Record(Action{Kind: ActionMove, CourseID: fmt.Sprintf("c%d", i)})
		}
		if l.Len() != 50 {
			t.Fatalf("len = %d, want 50", l.Len())
		}
		// c0, the oldest, is unrecoverable; the newest is still on top.
		if a, _ := l.Peek(); a.CourseID != "c50" {
			t.Errorf("head = %s, want c50", a.CourseID)
		}
		last := Action{}
		for {
			a, ok := l.Pop()
			if !ok {
				break
			}
			last = a
		}
		if last.CourseID != "c1" {
			t.Errorf("oldest surviving = %s, want c1", last.CourseID)
		}
	})
}

func TestUndo(t *testing.T) {
	t.Run("empty log", func(t *testing.T) {
		s, _ := newTestStore(t)
		if _, err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
			t.Errorf("got %v, want ErrNothingToUndo", err)
		}
	})

	t.Run("move then undo restores slot and room", func(t *testing.T) {
		s, pub := newTestStore(t,
			&Course{ID: "X", Code: "ECON", Number: "301", SlotID: "MW-A", Room: "RO-23"},
			&Course{ID: "Y", Code: "MGMT", Number: "402", SlotID: "MW-B", Room: "RO-23"},
		)

		// The move clears X's room; undo must bring both slot and room back.
		if _, err := s.Move("X", "MW-B"); err != nil {
			t.Fatal(err)
		}
		a, err := s.Undo()
		if err != nil {
			t.Fatalf("undo: %v", err)
		}
		if a.Kind != ActionMove {
			t.Errorf("kind = %s, want move", a.Kind)
		}

		x := s.Course("X")
		if x.SlotID != "MW-A" || x.Room != "RO-23" {
			t.Errorf("got slot=%q room=%q, want MW-A/RO-23", x.SlotID, x.Room)
		}
		// Compensation published: a move back plus a room restore.
		if len(pub.moves) != 2 || pub.moves[1].SlotID != "MW-A" {
			t.Errorf("published moves = %+v", pub.moves)
		}
		if s.UndoLen() != 0 {
			t.Error("undo must not be recorded as a new action")
		}
	})

	t.Run("update then undo restores prior fields", func(t *testing.T) {
		s, _ := newTestStore(t,
			&Course{ID: "X", Code: "ECON", Number: "301", Instructor: "Jones", Room: "RO-12"},
		)

		if err := s.Update("X", Fields{Instructor: strPtr("Smith"), Room: strPtr("RO-23")}); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Undo(); err != nil {
			t.Fatalf("undo: %v", err)
		}

		x := s.Course("X")
		if x.Instructor != "Jones" || x.Room != "RO-12" {
			t.Errorf("got instructor=%q room=%q, want Jones/RO-12", x.Instructor, x.Room)
		}
	})

	t.Run("add then undo deletes and publishes delete", func(t *testing.T) {
		s, pub := newTestStore(t)

		c, err := s.Add(AddFields{Code: "ECON", Number: "301"})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.Undo(); err != nil {
			t.Fatalf("undo: %v", err)
		}

		if s.Course(c.ID) != nil {
			t.Error("course still present after undo of add")
		}
		if len(pub.deletes) != 1 || pub.deletes[0] != c.ID {
			t.Errorf("published deletes = %v", pub.deletes)
		}
	})

	t.Run("sequential undo composes LIFO", func(t *testing.T) {
		s, _ := newTestStore(t,
			&Course{ID: "X", Code: "ECON", Number: "301", SlotID: "MW-A", Room: "RO-23"},
		)

		if _, err := s.Move("X", "MW-C"); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Move("X", "TR-G"); err != nil {
			t.Fatal(err)
		}

		if _, err := s.Undo(); err != nil {
			t.Fatal(err)
		}
		if got := s.Course("X").SlotID; got != "MW-C" {
			t.Errorf("after first undo slot = %q, want MW-C", got)
		}

		if _, err := s.Undo(); err != nil {
			t.Fatal(err)
		}
		x := s.Course("X")
		if x.SlotID != "MW-A" || x.Room != "RO-23" {
			t.Errorf("after second undo got slot=%q room=%q, want original MW-A/RO-23", x.SlotID, x.Room)
		}
	})

	t.Run("undo bypasses conflict rejection", func(t *testing.T) {
		s, _ := newTestStore(t,
			&Course{ID: "X", Code: "ECON", Number: "301", SlotID: "MW-A", Room: "RO-23"},
		)

		if _, err := s.Move("X", "MW-B"); err != nil {
			t.Fatal(err)
		}
		// A broadcast slides another course into the vacated pair.
		s.ApplyAdd(&Course{ID: "Z", Code: "ACCT", Number: "321", SlotID: "MW-A", Room: "RO-23"})

		// Undo still restores X to (MW-A, RO-23) even though Z now holds it;
		// it is restoring a previously-valid state.
		if _, err := s.Undo(); err != nil {
			t.Fatalf("undo: %v", err)
		}
		x := s.Course("X")
		if x.SlotID != "MW-A" || x.Room != "RO-23" {
			t.Errorf("got slot=%q room=%q", x.SlotID, x.Room)
		}
	})

	t.Run("undo targeting a deleted course consumes the action", func(t *testing.T) {
		s, _ := newTestStore(t,
			&Course{ID: "X", Code: "ECON", Number: "301", SlotID: "MW-A"},
		)
		if _, err := s.Move("X", "MW-B"); err != nil {
			t.Fatal(err)
		}
		s.ApplyDelete("X")

		if _, err := s.Undo(); err != nil {
			t.Fatalf("undo: %v", err)
		}
		if s.UndoLen() != 0 {
			t.Error("action should be consumed even when the course is gone")
		}
	})

	t.Run("peek exposes the pending action label", func(t *testing.T) {
		s, _ := newTestStore(t,
			&Course{ID: "X", Code: "ECON", Number: "301", Section: "1"},
		)
		if _, ok := s.UndoPeek(); ok {
			t.Error("empty log should have no peek")
		}
		if _, err := s.Move("X", "MW-B"); err != nil {
			t.Fatal(err)
		}
		label, ok := s.UndoPeek()
		if !ok || label == "" {
			t.Errorf("got label=%q ok=%v", label, ok)
		}
	})
}
