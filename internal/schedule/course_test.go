package schedule

import (
	"errors"
	"testing"
)

func TestNewCourse(t *testing.T) {
	t.Run("valid course", func(t *testing.T) {
		c, err := NewCourse("econ", "301", "Money & Banking", "Jones", "RO-23", "MW-A")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Code != "ECON" {
			t.Errorf("got code %q, want %q (upper-cased)", c.Code, "ECON")
		}
		if c.Number != "301" {
			t.Errorf("got number %q, want %q", c.Number, "301")
		}
		if c.Room != "RO-23" || c.SlotID != "MW-A" {
			t.Errorf("got room=%q slot=%q", c.Room, c.SlotID)
		}
	})

	t.Run("unscheduled course", func(t *testing.T) {
		c, err := NewCourse("MGMT", "205", "", "", "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.IsScheduled() {
			t.Error("course with empty slot should not be scheduled")
		}
	})
}

func TestNewCourse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		number  string
		room    string
		slotID  string
		wantErr error
	}{
		{name: "empty code", code: "", number: "301", wantErr: ErrEmptyCode},
		{name: "empty number", code: "ECON", number: "", wantErr: ErrEmptyNumber},
		{name: "unknown slot", code: "ECON", number: "301", slotID: "XX-Q", wantErr: ErrUnknownSlot},
		{name: "unknown room", code: "ECON", number: "301", room: "RO-999", wantErr: ErrUnknownRoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCourse(tt.code, tt.number, "", "", tt.room, tt.slotID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCourseLabel(t *testing.T) {
	c := &Course{Code: "ECON", Number: "301", Section: "2"}
	if got := c.Label(); got != "ECON 301-2" {
		t.Errorf("got %q, want %q", got, "ECON 301-2")
	}

	c.Section = ""
	if got := c.Label(); got != "ECON 301" {
		t.Errorf("got %q, want %q", got, "ECON 301")
	}
}

func TestIsGraduate(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"205", false},
		{"499", false},
		{"499A", false},
		{"500", true},
		{"551", true},
		{"628", true},
		{"", false},
	}

	for _, tt := range tests {
		c := &Course{Number: tt.number}
		if got := c.IsGraduate(); got != tt.want {
			t.Errorf("IsGraduate(%q) = %v, want %v", tt.number, got, tt.want)
		}
	}
}

func TestParseTerm(t *testing.T) {
	for _, s := range []string{"fall", "Fall", " FALL "} {
		term, err := ParseTerm(s)
		if err != nil || term != TermFall {
			t.Errorf("ParseTerm(%q) = %v, %v", s, term, err)
		}
	}

	if _, err := ParseTerm("summer"); !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("ParseTerm(summer) error = %v, want ErrInvalidTerm", err)
	}
}
