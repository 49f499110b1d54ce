// Package schedule defines the course-schedule domain for slate: the
// term-scoped mirror of the authority's schedule, the room-conflict
// detector, and the bounded undo log.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validation errors.
var (
	ErrEmptyCode   = errors.New("course code cannot be empty")
	ErrEmptyNumber = errors.New("course number cannot be empty")
	ErrUnknownSlot = errors.New("unknown time slot")
	ErrUnknownRoom = errors.New("unknown room")
	ErrInvalidTerm = errors.New("term must be 'fall' or 'spring'")
)

// Domain errors.
var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrSyncUnavailable = errors.New("sync unavailable")
)

// Term is one of the two independent scheduling periods. Each term owns its
// own course collection, faculty roster, and undo log.
type Term string

const (
	TermFall   Term = "fall"
	TermSpring Term = "spring"
)

// ParseTerm parses a term name, case-insensitively.
func ParseTerm(s string) (Term, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fall":
		return TermFall, nil
	case "spring":
		return TermSpring, nil
	default:
		return "", ErrInvalidTerm
	}
}

// Valid returns true if the term is one of the two catalog values.
func (t Term) Valid() bool {
	return t == TermFall || t == TermSpring
}

// Course represents one section of a course on the board.
//
// SlotID and Room are references into the fixed catalogs; either may be
// empty, meaning unscheduled and no room assigned respectively.
type Course struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Number     string `json:"number"`
	Section    string `json:"section"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
	Room       string `json:"room"`
	SlotID     string `json:"slotId"`
	Bimodal    bool   `json:"bimodal,omitempty"`
}

// NewCourse creates a course with validation. The id is assigned by the
// Store (or by the authority) using the CODE-NUMBER-SECTION scheme.
func NewCourse(code, number, name, instructor, room, slotID string) (*Course, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	number = strings.TrimSpace(number)

	if code == "" {
		return nil, ErrEmptyCode
	}
	if number == "" {
		return nil, ErrEmptyNumber
	}
	if !ValidSlot(slotID) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSlot, slotID)
	}
	if !ValidRoom(room) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoom, room)
	}

	return &Course{
		Code:       code,
		Number:     number,
		Name:       strings.TrimSpace(name),
		Instructor: strings.TrimSpace(instructor),
		Room:       room,
		SlotID:     slotID,
	}, nil
}

// Label returns the short display form, e.g. "ECON 301-1".
func (c *Course) Label() string {
	if c.Section == "" {
		return fmt.Sprintf("%s %s", c.Code, c.Number)
	}
	return fmt.Sprintf("%s %s-%s", c.Code, c.Number, c.Section)
}

// IsScheduled returns true if the course is placed in a slot.
func (c *Course) IsScheduled() bool {
	return c.SlotID != ""
}

// IsGraduate returns true for numeric course numbers of 500 or above.
// The bimodal flag is only meaningful for graduate sections.
func (c *Course) IsGraduate() bool {
	digits := c.Number
	for len(digits) > 0 && (digits[len(digits)-1] < '0' || digits[len(digits)-1] > '9') {
		digits = digits[:len(digits)-1] // strip suffix letters like 499A
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return false
	}
	return n >= 500
}

func (c *Course) clone() *Course {
	dup := *c
	return &dup
}
