package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Fields is a partial course patch. Nil members are left untouched.
type Fields struct {
	Name       *string
	Instructor *string
	Room       *string
	Bimodal    *bool
}

// IsZero returns true when no field is set.
func (f Fields) IsZero() bool {
	return f.Name == nil && f.Instructor == nil && f.Room == nil && f.Bimodal == nil
}

// Publisher delivers outbound mutation events to the remote authority.
//
// Publish calls are made with the mirror already updated and must not block
// on acknowledgment, and must not call back into the Store synchronously.
// A failed publish is reported as ErrSyncUnavailable; the local mutation is
// never rolled back.
type Publisher interface {
	PublishMove(term Term, courseID, slotID string) error
	PublishUpdate(term Term, courseID string, fields Fields) error
	PublishAdd(term Term, course *Course) error
	PublishDelete(term Term, courseID string) error
	PublishFacultyAdd(term Term, name string) error
	PublishFacultyDelete(term Term, name string) error
}

// RoomConflictError reports an Update rejected because the requested room is
// already occupied in the course's slot.
type RoomConflictError struct {
	Room     string
	SlotID   string
	Blocking *Course
}

func (e *RoomConflictError) Error() string {
	return fmt.Sprintf("room %s is taken in slot %s by %s", e.Room, e.SlotID, e.Blocking.Label())
}

// MoveResult reports the side effects of a Move.
type MoveResult struct {
	PrevSlot    string
	PrevRoom    string
	RoomCleared bool   // the target (slot, room) pair was occupied
	ClearedRoom string // the room that was dropped, when RoomCleared
}

// AddFields holds the caller-supplied fields for a new course section.
type AddFields struct {
	Code       string
	Number     string
	Name       string
	Instructor string
	Room       string
	SlotID     string
	Bimodal    bool
}

// Store owns the term-scoped mirror of the authority's schedule. All
// mutations go through it: the undo engine and the sync adapter never touch
// courses directly.
//
// Every operation takes the store lock, so no operation observes a
// partially-applied mutation of another.
type Store struct {
	mu      sync.Mutex
	term    Term
	courses []*Course
	faculty []string
	undo    UndoLog
	pub     Publisher

	now func() time.Time // test hook
}

// NewStore creates an empty mirror for the given term.
func NewStore(term Term, pub Publisher) *Store {
	return &Store{term: term, pub: pub, now: time.Now}
}

// Term returns the active term.
func (s *Store) Term() Term {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

// Courses returns a snapshot copy of the course collection.
func (s *Store) Courses() []*Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Course, len(s.courses))
	for i, c := range s.courses {
		out[i] = c.clone()
	}
	return out
}

// Course returns a copy of the course with the given id, or nil.
func (s *Store) Course(id string) *Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.find(id); c != nil {
		return c.clone()
	}
	return nil
}

// Faculty returns the sorted roster.
func (s *Store) Faculty() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.faculty))
	copy(out, s.faculty)
	return out
}

// UndoLen returns the number of undoable actions.
func (s *Store) UndoLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo.Len()
}

// UndoPeek returns the label of the action Undo would reverse, if any.
func (s *Store) UndoPeek() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.undo.Peek()
	return a.Label, ok
}

// Move places the course into the target slot (empty means unscheduled).
//
// Move always succeeds for a known course: if the course holds a room and
// the target (slot, room) pair is occupied, the room is cleared and reported
// via RoomCleared. The mover wins the slot; the room assignment is dropped
// rather than the move rejected.
//
// A failed outbound publish returns ErrSyncUnavailable with the local
// mutation kept; the next full sync reconciles the divergence.
func (s *Store) Move(id, slotID string) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ValidSlot(slotID) {
		return MoveResult{}, fmt.Errorf("%w: %s", ErrUnknownSlot, slotID)
	}
	c := s.find(id)
	if c == nil {
		return MoveResult{}, fmt.Errorf("%w: %s", ErrCourseNotFound, id)
	}

	res := MoveResult{PrevSlot: c.SlotID, PrevRoom: c.Room}
	if c.Room != "" && Conflicts(s.courses, id, slotID, c.Room) {
		res.RoomCleared = true
		res.ClearedRoom = c.Room
		c.Room = ""
	}
	c.SlotID = slotID

	s.undo.Record(Action{
		Kind:     ActionMove,
		CourseID: id,
		Label:    fmt.Sprintf("move %s to %s", c.Label(), slotName(slotID)),
		At:       s.now(),
		PrevSlot: res.PrevSlot,
		PrevRoom: res.PrevRoom,
	})

	if err := s.pub.PublishMove(s.term, id, slotID); err != nil {
		return res, fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
	}
	if res.RoomCleared {
		empty := ""
		if err := s.pub.PublishUpdate(s.term, id, Fields{Room: &empty}); err != nil {
			return res, fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
		}
	}
	return res, nil
}

// Update applies a field patch to the course. Unlike Move, Update rejects
// on a room conflict: it is an explicit edit, not a drag gesture, so the
// operator is told which course blocks the room instead of silently losing
// the assignment.
func (s *Store) Update(id string, f Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return fmt.Errorf("%w: %s", ErrCourseNotFound, id)
	}
	if f.IsZero() {
		return nil
	}
	if f.Room != nil && !ValidRoom(*f.Room) {
		return fmt.Errorf("%w: %s", ErrUnknownRoom, *f.Room)
	}
	if f.Room != nil && *f.Room != "" && c.SlotID != "" {
		if blocking := FindConflict(s.courses, id, c.SlotID, *f.Room); blocking != nil {
			return &RoomConflictError{Room: *f.Room, SlotID: c.SlotID, Blocking: blocking.clone()}
		}
	}

	prev := Fields{}
	if f.Name != nil {
		v := c.Name
		prev.Name = &v
		c.Name = *f.Name
	}
	if f.Instructor != nil {
		v := c.Instructor
		prev.Instructor = &v
		c.Instructor = strings.TrimSpace(*f.Instructor)
		s.rosterInsert(c.Instructor)
	}
	if f.Room != nil {
		v := c.Room
		prev.Room = &v
		c.Room = *f.Room
	}
	if f.Bimodal != nil && c.IsGraduate() {
		v := c.Bimodal
		prev.Bimodal = &v
		c.Bimodal = *f.Bimodal
	}

	s.undo.Record(Action{
		Kind:     ActionUpdate,
		CourseID: id,
		Label:    fmt.Sprintf("edit %s", c.Label()),
		At:       s.now(),
		Prev:     prev,
	})

	if err := s.pub.PublishUpdate(s.term, id, f); err != nil {
		return fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
	}
	return nil
}

// Add creates a new course section locally. The id follows the authority's
// CODE-NUMBER-SECTION scheme with the next free section number; if the
// authority's confirmation later assigns a different id, AdoptID re-keys
// the course and its undo entries.
func (s *Store) Add(f AddFields) (*Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := NewCourse(f.Code, f.Number, f.Name, f.Instructor, f.Room, f.SlotID)
	if err != nil {
		return nil, err
	}
	c.Section = s.nextSection(c.Code, c.Number)
	c.ID = fmt.Sprintf("%s-%s-%s", c.Code, c.Number, c.Section)
	if f.Bimodal && c.IsGraduate() {
		c.Bimodal = true
	}

	s.courses = append(s.courses, c)
	s.rosterInsert(c.Instructor)

	s.undo.Record(Action{
		Kind:     ActionAdd,
		CourseID: c.ID,
		Label:    fmt.Sprintf("add %s", c.Label()),
		At:       s.now(),
	})

	if err := s.pub.PublishAdd(s.term, c.clone()); err != nil {
		return c.clone(), fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
	}
	return c.clone(), nil
}

// Remove unschedules and hard-deletes the course. Explicit removal is not
// undoable; only the inverse of Add deletes through the undo path.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(id) == nil {
		return fmt.Errorf("%w: %s", ErrCourseNotFound, id)
	}
	s.delete(id)

	if err := s.pub.PublishDelete(s.term, id); err != nil {
		return fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
	}
	return nil
}

// AdoptID re-keys a locally added course to the authority's canonical id.
// No-op when the ids already match or the placeholder is gone.
func (s *Store) AdoptID(placeholderID, canonicalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if placeholderID == canonicalID || canonicalID == "" {
		return
	}
	c := s.find(placeholderID)
	if c == nil {
		return
	}
	c.ID = canonicalID
	s.undo.Retarget(placeholderID, canonicalID)
}

// AddFaculty inserts a name into the roster and publishes it. Returns false
// when the name is already present.
func (s *Store) AddFaculty(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" || s.rosterHas(name) {
		return false, nil
	}
	s.rosterInsert(name)
	if err := s.pub.PublishFacultyAdd(s.term, name); err != nil {
		return true, fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
	}
	return true, nil
}

// RemoveFaculty drops a name from the roster and publishes the removal.
// Courses keep their instructor field; the roster is advisory.
func (s *Store) RemoveFaculty(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.rosterHas(name) {
		return false, nil
	}
	s.rosterDelete(name)
	if err := s.pub.PublishFacultyDelete(s.term, name); err != nil {
		return true, fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
	}
	return true, nil
}

// SwitchTerm activates a different term, discarding the mirror and the undo
// log. The caller is responsible for requesting a full resync.
func (s *Store) SwitchTerm(term Term) error {
	if !term.Valid() {
		return ErrInvalidTerm
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if term == s.term {
		return nil
	}
	s.term = term
	s.courses = nil
	s.faculty = nil
	s.undo.Clear()
	return nil
}

// ReplaceAll replaces the mirror with the authority's snapshot. The roster
// is seeded from the explicit faculty list plus every distinct instructor
// on a course, deduplicated and sorted.
//
// Applied unconditionally: the authority's snapshot wins over any local
// optimistic state.
func (s *Store) ReplaceAll(courses []*Course, faculty []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.courses = make([]*Course, 0, len(courses))
	for _, c := range courses {
		if c != nil {
			s.courses = append(s.courses, c.clone())
		}
	}

	s.faculty = nil
	for _, name := range faculty {
		s.rosterInsert(name)
	}
	for _, c := range s.courses {
		s.rosterInsert(c.Instructor)
	}
}

// ApplySlot applies an inbound slot change. Unknown ids no-op: the mirror
// may be stale relative to a concurrent deletion.
func (s *Store) ApplySlot(id, slotID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c := s.find(id); c != nil {
		c.SlotID = slotID
	}
}

// ApplyPatch applies an inbound field patch without conflict checks or undo
// recording: inbound events are last-writer-wins.
func (s *Store) ApplyPatch(id string, f Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return
	}
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Instructor != nil {
		c.Instructor = *f.Instructor
		s.rosterInsert(c.Instructor)
	}
	if f.Room != nil {
		c.Room = *f.Room
	}
	if f.Bimodal != nil {
		c.Bimodal = *f.Bimodal
	}
}

// ApplyAdd applies an inbound course addition, replacing any local course
// with the same id.
func (s *Store) ApplyAdd(c *Course) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.delete(c.ID)
	s.courses = append(s.courses, c.clone())
	s.rosterInsert(c.Instructor)
}

// ApplyDelete applies an inbound course deletion. The undo log is not
// corrected retroactively; a later undo touching this id becomes a no-op.
func (s *Store) ApplyDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delete(id)
}

// ApplyFacultyAdd applies an inbound roster addition.
func (s *Store) ApplyFacultyAdd(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosterInsert(name)
}

// ApplyFacultyDelete applies an inbound roster removal.
func (s *Store) ApplyFacultyDelete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosterDelete(name)
}

// find returns the live course with the given id. Callers hold s.mu.
func (s *Store) find(id string) *Course {
	for _, c := range s.courses {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Store) delete(id string) {
	for i, c := range s.courses {
		if c.ID == id {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			return
		}
	}
}

// nextSection returns the next free numeric section for (code, number),
// matching the authority's auto-numbering.
func (s *Store) nextSection(code, number string) string {
	maxSection := 0
	for _, c := range s.courses {
		if c.Code != code || c.Number != number {
			continue
		}
		if n, err := strconv.Atoi(c.Section); err == nil && n > maxSection {
			maxSection = n
		}
	}
	return strconv.Itoa(maxSection + 1)
}

func (s *Store) rosterHas(name string) bool {
	for _, f := range s.faculty {
		if f == name {
			return true
		}
	}
	return false
}

// rosterInsert adds a name and resorts, keeping iteration order stable and
// lexicographic.
func (s *Store) rosterInsert(name string) {
	name = strings.TrimSpace(name)
	if name == "" || s.rosterHas(name) {
		return
	}
	s.faculty = append(s.faculty, name)
	sort.Strings(s.faculty)
}

func (s *Store) rosterDelete(name string) {
	for i, f := range s.faculty {
		if f == name {
			s.faculty = append(s.faculty[:i], s.faculty[i+1:]...)
			return
		}
	}
}

func slotName(id string) string {
	if id == "" {
		return "unscheduled"
	}
	return id
}
