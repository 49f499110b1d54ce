package schedule

import (
	"fmt"
	"time"
)

// ActionKind tags an undo log entry with the mutation it reverses.
type ActionKind string

const (
	ActionMove   ActionKind = "move"
	ActionUpdate ActionKind = "update"
	ActionAdd    ActionKind = "add"
)

// Action is an inverse descriptor: enough prior state to exactly reverse one
// mutation. Move carries the prior slot and room, Update the prior field
// values, Add nothing beyond the id (its inverse is deletion).
type Action struct {
	Kind     ActionKind
	CourseID string
	Label    string
	At       time.Time

	PrevSlot string // move
	PrevRoom string // move
	Prev     Fields // update
}

// undoLimit bounds the log; the oldest entry is evicted on overflow.
const undoLimit = 50

// UndoLog is a finite ordered sequence of actions, newest at the head.
// Eviction is FIFO at the tail, consumption is LIFO at the head.
type UndoLog struct {
	actions []Action
}

// Record pushes an action onto the head of the log, evicting the oldest
// entry when the log already holds undoLimit actions.
func (l *UndoLog) Record(a Action) {
	l.actions = append([]Action{a}, l.actions...)
	if len(l.actions) > undoLimit {
		l.actions = l.actions[:undoLimit]
	}
}

// Pop removes and returns the most recent action.
func (l *UndoLog) Pop() (Action, bool) {
	if len(l.actions) == 0 {
		return Action{}, false
	}
	a := l.actions[0]
	l.actions = l.actions[1:]
	return a, true
}

// Peek returns the most recent action without removing it.
func (l *UndoLog) Peek() (Action, bool) {
	if len(l.actions) == 0 {
		return Action{}, false
	}
	return l.actions[0], true
}

// Len returns the number of recorded actions.
func (l *UndoLog) Len() int {
	return len(l.actions)
}

// Clear drops every recorded action. Used on term switch: the undo log is
// never carried across terms.
func (l *UndoLog) Clear() {
	l.actions = nil
}

// Retarget repoints entries for oldID at newID. Used when the authority
// assigns a canonical id to a locally added course.
func (l *UndoLog) Retarget(oldID, newID string) {
	for i := range l.actions {
		if l.actions[i].CourseID == oldID {
			l.actions[i].CourseID = newID
		}
	}
}

// Undo reverses the most recent recorded action and publishes the
// compensating mutation. Restoration bypasses the conflict detector: undo
// must always succeed locally, even if a broadcast received since then
// makes the restored state conflict again.
//
// Undo is not itself recorded, so there is no redo and repeated undo cannot
// grow the log. If the target course was deleted by a concurrent broadcast
// the restore is a no-op; the action is still consumed.
func (s *Store) Undo() (Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.undo.Pop()
	if !ok {
		return Action{}, ErrNothingToUndo
	}

	switch a.Kind {
	case ActionMove:
		c := s.find(a.CourseID)
		if c == nil {
			return a, nil
		}
		c.SlotID = a.PrevSlot
		c.Room = a.PrevRoom
		if err := s.pub.PublishMove(s.term, a.CourseID, a.PrevSlot); err != nil {
			return a, fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
		}
		room := a.PrevRoom
		if err := s.pub.PublishUpdate(s.term, a.CourseID, Fields{Room: &room}); err != nil {
			return a, fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
		}

	case ActionUpdate:
		c := s.find(a.CourseID)
		if c == nil {
			return a, nil
		}
		if a.Prev.Name != nil {
			c.Name = *a.Prev.Name
		}
		if a.Prev.Instructor != nil {
			c.Instructor = *a.Prev.Instructor
			s.rosterInsert(c.Instructor)
		}
		if a.Prev.Room != nil {
			c.Room = *a.Prev.Room
		}
		if a.Prev.Bimodal != nil {
			c.Bimodal = *a.Prev.Bimodal
		}
		if err := s.pub.PublishUpdate(s.term, a.CourseID, a.Prev); err != nil {
			return a, fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
		}

	case ActionAdd:
		if s.find(a.CourseID) == nil {
			return a, nil
		}
		s.delete(a.CourseID)
		if err := s.pub.PublishDelete(s.term, a.CourseID); err != nil {
			return a, fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
		}
	}

	return a, nil
}
