package ui

import (
	"context"
	"testing"

	"github.com/nvelez/slate/internal/remote"
	"github.com/nvelez/slate/internal/schedule"
)

// stubConfirmer answers every confirmation immediately.
type stubConfirmer struct {
	moves       []string
	confirmedID string
}

func (s *stubConfirmer) Snapshot(context.Context, schedule.Term) (*remote.Snapshot, error) {
	return &remote.Snapshot{}, nil
}

func (s *stubConfirmer) MoveCourse(_ context.Context, _ schedule.Term, courseID, slotID string) error {
	s.moves = append(s.moves, courseID+"->"+slotID)
	return nil
}

func (s *stubConfirmer) UpdateCourse(context.Context, schedule.Term, string, remote.Patch) error {
	return nil
}

func (s *stubConfirmer) AddCourse(_ context.Context, _ schedule.Term, course *schedule.Course) (*schedule.Course, error) {
	confirmed := *course
	if s.confirmedID != "" {
		confirmed.ID = s.confirmedID
	}
	return &confirmed, nil
}

func (s *stubConfirmer) DeleteCourse(context.Context, schedule.Term, string) error  { return nil }
func (s *stubConfirmer) AddFaculty(context.Context, schedule.Term, string) error    { return nil }
func (s *stubConfirmer) DeleteFaculty(context.Context, schedule.Term, string) error { return nil }
func (s *stubConfirmer) Restore(context.Context, schedule.Term, *remote.Snapshot) error {
	return nil
}

func TestSyncPublisher_Move(t *testing.T) {
	confirmer := &stubConfirmer{}
	pub := &syncPublisher{confirmer: confirmer, ctx: context.Background()}
	store := schedule.NewStore(schedule.TermFall, pub)
	store.ReplaceAll([]*schedule.Course{
		{ID: "ECON-301-1", Code: "ECON", Number: "301", Section: "1"},
	}, nil)

	if _, err := store.Move("ECON-301-1", "MW-B"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if len(confirmer.moves) != 1 || confirmer.moves[0] != "ECON-301-1->MW-B" {
		t.Errorf("confirmed moves = %v", confirmer.moves)
	}
}

func TestSyncPublisher_AddKeepsCanonicalID(t *testing.T) {
	confirmer := &stubConfirmer{confirmedID: "ECON-301-7"}
	pub := &syncPublisher{confirmer: confirmer, ctx: context.Background()}
	store := schedule.NewStore(schedule.TermFall, pub)

	course, err := store.Add(schedule.AddFields{Code: "ECON", Number: "301"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// The add command applies the confirmed id after the mutation returns.
	if pub.confirmed == nil || pub.confirmed.ID != "ECON-301-7" {
		t.Fatalf("confirmed = %+v", pub.confirmed)
	}
	store.AdoptID(course.ID, pub.confirmed.ID)

	if store.Course("ECON-301-7") == nil {
		t.Error("canonical id not adopted")
	}
}
