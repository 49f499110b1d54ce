package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nvelez/slate/internal/schedule"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := New(filepath.Join(t.TempDir(), "slate.db"))
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestSaveLoadSnapshot(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	courses := []*schedule.Course{
		{ID: "ECON-301-1", Code: "ECON", Number: "301", Section: "1", Name: "Intermediate Macro", Instructor: "Smith", Room: "RO-23", SlotID: "MW-A"},
		{ID: "MGMT-402-1", Code: "MGMT", Number: "402", Section: "1", Instructor: "Nguyen", Bimodal: true},
	}
	if err := cache.SaveSnapshot(ctx, schedule.TermFall, courses, []string{"Nguyen", "Smith"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	gotCourses, gotFaculty, err := cache.LoadSnapshot(ctx, schedule.TermFall)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(gotCourses) != 2 {
		t.Fatalf("courses = %+v", gotCourses)
	}

	econ := gotCourses[0]
	if econ.ID != "ECON-301-1" || econ.SlotID != "MW-A" || econ.Room != "RO-23" {
		t.Errorf("course = %+v", econ)
	}
	if !gotCourses[1].Bimodal {
		t.Error("bimodal flag lost")
	}
	if len(gotFaculty) != 2 || gotFaculty[0] != "Nguyen" {
		t.Errorf("faculty = %v", gotFaculty)
	}
}

func TestSaveSnapshot_ReplacesPrevious(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	first := []*schedule.Course{{ID: "A-1-1", Code: "A", Number: "1", Section: "1"}}
	second := []*schedule.Course{{ID: "B-2-1", Code: "B", Number: "2", Section: "1"}}

	if err := cache.SaveSnapshot(ctx, schedule.TermFall, first, nil); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := cache.SaveSnapshot(ctx, schedule.TermFall, second, nil); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, _, err := cache.LoadSnapshot(ctx, schedule.TermFall)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "B-2-1" {
		t.Errorf("courses = %+v, want only the second snapshot", got)
	}
}

func TestSnapshotsAreTermScoped(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	fall := []*schedule.Course{{ID: "F-1-1", Code: "F", Number: "1", Section: "1"}}
	spring := []*schedule.Course{{ID: "S-1-1", Code: "S", Number: "1", Section: "1"}}

	if err := cache.SaveSnapshot(ctx, schedule.TermFall, fall, []string{"Fallon"}); err != nil {
		t.Fatalf("save fall: %v", err)
	}
	if err := cache.SaveSnapshot(ctx, schedule.TermSpring, spring, []string{"Springer"}); err != nil {
		t.Fatalf("save spring: %v", err)
	}

	got, faculty, err := cache.LoadSnapshot(ctx, schedule.TermSpring)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "S-1-1" {
		t.Errorf("spring courses = %+v", got)
	}
	if len(faculty) != 1 || faculty[0] != "Springer" {
		t.Errorf("spring faculty = %v", faculty)
	}
}

func TestLoadSnapshot_UncachedTerm(t *testing.T) {
	cache := newTestCache(t)

	courses, faculty, err := cache.LoadSnapshot(context.Background(), schedule.TermSpring)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(courses) != 0 || len(faculty) != 0 {
		t.Errorf("uncached term returned data: %v %v", courses, faculty)
	}
}

func TestSavedAt(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if _, ok, err := cache.SavedAt(ctx, schedule.TermFall); err != nil || ok {
		t.Fatalf("SavedAt before save = ok=%v err=%v", ok, err)
	}

	if err := cache.SaveSnapshot(ctx, schedule.TermFall, nil, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	at, ok, err := cache.SavedAt(ctx, schedule.TermFall)
	if err != nil || !ok {
		t.Fatalf("SavedAt after save = ok=%v err=%v", ok, err)
	}
	if at.IsZero() {
		t.Error("saved_at is zero")
	}
}
