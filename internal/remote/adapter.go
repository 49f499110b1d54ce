package remote

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nvelez/slate/internal/schedule"
)

// Emitter is the broadcast half of the authority connection.
type Emitter interface {
	Emit(ev Event) error
}

// Adapter is the bidirectional bridge between the schedule store and the
// authority. It implements schedule.Publisher for the outbound direction
// and Apply for the inbound one.
//
// Inbound events are applied in arrival order, unconditionally: the last
// writer wins, there is no merge and no sequencing. The term filter is the
// only concurrency guard.
type Adapter struct {
	store     *schedule.Store
	confirmer Confirmer
	emitter   Emitter
	log       zerolog.Logger

	onApplied func(Event)
	onError   func(error)
}

var _ schedule.Publisher = (*Adapter)(nil)

// NewAdapter wires a store to the authority connection.
func NewAdapter(store *schedule.Store, confirmer Confirmer, emitter Emitter, log zerolog.Logger) *Adapter {
	return &Adapter{
		store:     store,
		confirmer: confirmer,
		emitter:   emitter,
		log:       log,
		onApplied: func(Event) {},
		onError:   func(error) {},
	}
}

// OnApplied registers a hook called after each inbound event lands in the
// mirror. The presentation layer uses it to re-render.
func (a *Adapter) OnApplied(fn func(Event)) {
	if fn != nil {
		a.onApplied = fn
	}
}

// OnError registers a hook for asynchronous publish failures. There is no
// retry: a failed confirmation is reported once and reconciled by the next
// full sync.
func (a *Adapter) OnError(fn func(error)) {
	if fn != nil {
		a.onError = fn
	}
}

// Apply dispatches one inbound broadcast to the store. All reconciliation
// policy lives here, in one place.
func (a *Adapter) Apply(ev Event) {
	if ev.TermScoped() && ev.Term != a.store.Term() {
		a.log.Debug().Str("event", string(ev.Kind)).Str("term", string(ev.Term)).Msg("dropping event for inactive term")
		return
	}

	switch ev.Kind {
	case KindFullSync:
		a.store.ReplaceAll(ev.Courses, ev.Faculty)

	case KindScheduleUpdate:
		slot := ""
		if ev.SlotID != nil {
			slot = *ev.SlotID
		}
		a.store.ApplySlot(ev.CourseID, slot)

	case KindCourseUpdate:
		if ev.Updates != nil {
			a.store.ApplyPatch(ev.CourseID, ev.Updates.Fields())
		}

	case KindCourseAdded:
		a.store.ApplyAdd(ev.Course)

	case KindCourseDeleted:
		a.store.ApplyDelete(ev.CourseID)

	case KindFacultyAdded:
		a.store.ApplyFacultyAdd(ev.Name)

	case KindFacultyDeleted:
		a.store.ApplyFacultyDelete(ev.Name)

	case KindDataRestored:
		// The authority's data changed out from under every client; local
		// state is discarded and reloaded in full.
		if err := a.Resync(context.Background()); err != nil {
			a.report(fmt.Errorf("reload after restore: %w", err))
			return
		}

	default:
		a.log.Warn().Str("event", string(ev.Kind)).Msg("dropping unknown event kind")
		return
	}

	a.onApplied(ev)
}

// Resync replaces the mirror with a fresh authority snapshot. Called on
// (re)connect, term switch, and data_restored; there is no event replay
// because broadcasts carry no sequence numbers.
func (a *Adapter) Resync(ctx context.Context) error {
	snap, err := a.confirmer.Snapshot(ctx, a.store.Term())
	if err != nil {
		return fmt.Errorf("%w: %v", schedule.ErrSyncUnavailable, err)
	}
	a.store.ReplaceAll(snap.Courses, snap.Faculty)
	a.onApplied(Event{Kind: KindFullSync, Courses: snap.Courses, Faculty: snap.Faculty})
	return nil
}

// SwitchTerm activates the other term and resynchronizes. The store drops
// the old term's undo log as part of the switch.
func (a *Adapter) SwitchTerm(ctx context.Context, term schedule.Term) error {
	if err := a.store.SwitchTerm(term); err != nil {
		return err
	}
	return a.Resync(ctx)
}

// PublishMove sends a slot change over the broadcast channel.
func (a *Adapter) PublishMove(term schedule.Term, courseID, slotID string) error {
	return a.emitter.Emit(Event{
		Kind:     KindMove,
		Term:     term,
		CourseID: courseID,
		SlotID:   &slotID,
	})
}

// PublishUpdate confirms a field patch with the authority. The mirror is
// already updated; the confirmation runs in the background and failures are
// reported through OnError.
func (a *Adapter) PublishUpdate(term schedule.Term, courseID string, fields schedule.Fields) error {
	patch := PatchFromFields(fields)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := a.confirmer.UpdateCourse(ctx, term, courseID, patch); err != nil {
			a.report(fmt.Errorf("confirm update of %s: %w", courseID, err))
		}
	}()
	return nil
}

// PublishAdd confirms a new section with the authority. When the authority
// assigns a different canonical id, the local course is re-keyed.
func (a *Adapter) PublishAdd(term schedule.Term, course *schedule.Course) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		confirmed, err := a.confirmer.AddCourse(ctx, term, course)
		if err != nil {
			a.report(fmt.Errorf("confirm add of %s: %w", course.ID, err))
			return
		}
		if confirmed != nil && confirmed.ID != course.ID {
			a.store.AdoptID(course.ID, confirmed.ID)
		}
	}()
	return nil
}

// PublishDelete confirms a removal with the authority.
func (a *Adapter) PublishDelete(term schedule.Term, courseID string) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := a.confirmer.DeleteCourse(ctx, term, courseID); err != nil {
			a.report(fmt.Errorf("confirm delete of %s: %w", courseID, err))
		}
	}()
	return nil
}

// PublishFacultyAdd confirms a roster addition.
func (a *Adapter) PublishFacultyAdd(term schedule.Term, name string) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := a.confirmer.AddFaculty(ctx, term, name); err != nil {
			a.report(fmt.Errorf("confirm faculty add: %w", err))
		}
	}()
	return nil
}

// PublishFacultyDelete confirms a roster removal.
func (a *Adapter) PublishFacultyDelete(term schedule.Term, name string) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := a.confirmer.DeleteFaculty(ctx, term, name); err != nil {
			a.report(fmt.Errorf("confirm faculty delete: %w", err))
		}
	}()
	return nil
}

func (a *Adapter) report(err error) {
	a.log.Error().Err(err).Msg("outbound publish failed")
	a.onError(err)
}
