package ui

import (
	"context"

	"github.com/nvelez/slate/internal/remote"
	"github.com/nvelez/slate/internal/schedule"
)

// syncPublisher confirms mutations with the authority inline. One-shot
// commands make a single mutation and then exit, so there is nothing to
// gain from the board's background confirmation flow.
type syncPublisher struct {
	confirmer remote.Confirmer
	ctx       context.Context

	// Canonical course from the last confirmed add, if any. Applied by the
	// caller after the mutation returns.
	confirmed *schedule.Course
}

var _ schedule.Publisher = (*syncPublisher)(nil)

func (p *syncPublisher) PublishMove(term schedule.Term, courseID, slotID string) error {
	return p.confirmer.MoveCourse(p.ctx, term, courseID, slotID)
}

func (p *syncPublisher) PublishUpdate(term schedule.Term, courseID string, fields schedule.Fields) error {
	return p.confirmer.UpdateCourse(p.ctx, term, courseID, remote.PatchFromFields(fields))
}

func (p *syncPublisher) PublishAdd(term schedule.Term, course *schedule.Course) error {
	confirmed, err := p.confirmer.AddCourse(p.ctx, term, course)
	if err != nil {
		return err
	}
	p.confirmed = confirmed
	return nil
}

func (p *syncPublisher) PublishDelete(term schedule.Term, courseID string) error {
	return p.confirmer.DeleteCourse(p.ctx, term, courseID)
}

func (p *syncPublisher) PublishFacultyAdd(term schedule.Term, name string) error {
	return p.confirmer.AddFaculty(p.ctx, term, name)
}

func (p *syncPublisher) PublishFacultyDelete(term schedule.Term, name string) error {
	return p.confirmer.DeleteFaculty(p.ctx, term, name)
}

// loadStore seeds a local mirror from the authority's snapshot, wired to
// confirm mutations inline.
func (a *App) loadStore(ctx context.Context) (*schedule.Store, *syncPublisher, error) {
	auth := a.authority()
	snap, err := auth.Snapshot(ctx, a.cfg.Term())
	if err != nil {
		return nil, nil, err
	}

	pub := &syncPublisher{confirmer: auth, ctx: ctx}
	store := schedule.NewStore(a.cfg.Term(), pub)
	store.ReplaceAll(snap.Courses, snap.Faculty)
	return store, pub, nil
}
