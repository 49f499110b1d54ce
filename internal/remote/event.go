// Package remote keeps the local schedule mirror eventually consistent with
// the remote authority: it publishes local mutations outward and applies the
// authority's broadcasts to the store.
package remote

import (
	"time"

	"github.com/nvelez/slate/internal/schedule"
)

// EventKind names a wire event. The set is closed; unknown kinds are
// dropped with a warning.
type EventKind string

const (
	// Client to authority.
	KindMove        EventKind = "move"
	KindUpdate      EventKind = "update"
	KindAdd         EventKind = "add"
	KindDelete      EventKind = "delete"
	KindRequestSync EventKind = "request_sync"

	// Authority to every client.
	KindFullSync       EventKind = "full_sync"
	KindCourseAdded    EventKind = "course_added"
	KindCourseDeleted  EventKind = "course_deleted"
	KindCourseUpdate   EventKind = "course_update"
	KindScheduleUpdate EventKind = "schedule_update"
	KindFacultyAdded   EventKind = "faculty_added"
	KindFacultyDeleted EventKind = "faculty_deleted"
	KindDataRestored   EventKind = "data_restored"
)

// Patch is the wire form of a partial course update.
type Patch struct {
	Name       *string `json:"name,omitempty"`
	Instructor *string `json:"instructor,omitempty"`
	Room       *string `json:"room,omitempty"`
	Bimodal    *bool   `json:"bimodal,omitempty"`
}

// Fields converts the patch to the store's field form.
func (p Patch) Fields() schedule.Fields {
	return schedule.Fields{
		Name:       p.Name,
		Instructor: p.Instructor,
		Room:       p.Room,
		Bimodal:    p.Bimodal,
	}
}

// PatchFromFields converts store fields to the wire form.
func PatchFromFields(f schedule.Fields) Patch {
	return Patch{
		Name:       f.Name,
		Instructor: f.Instructor,
		Room:       f.Room,
		Bimodal:    f.Bimodal,
	}
}

// Event is one message on the authority channel, in either direction. Only
// the members relevant to the kind are populated.
//
// SlotID is a pointer because the empty slot is meaningful: it moves a
// course to unscheduled.
type Event struct {
	Kind      EventKind          `json:"event"`
	Term      schedule.Term      `json:"term,omitempty"`
	CourseID  string             `json:"courseId,omitempty"`
	SlotID    *string            `json:"slotId,omitempty"`
	Updates   *Patch             `json:"updates,omitempty"`
	Course    *schedule.Course   `json:"course,omitempty"`
	Name      string             `json:"name,omitempty"`
	Courses   []*schedule.Course `json:"courses,omitempty"`
	Faculty   []string           `json:"faculty,omitempty"`
	Timestamp time.Time          `json:"timestamp,omitempty"`
}

// TermScoped reports whether the event carries a term tag that must match
// the active term. Full syncs and restores always apply: they replace the
// mirror outright.
func (e Event) TermScoped() bool {
	switch e.Kind {
	case KindFullSync, KindDataRestored, KindRequestSync:
		return false
	default:
		return true
	}
}
