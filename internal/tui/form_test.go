package tui

import (
	"testing"

	"github.com/nvelez/slate/internal/schedule"
)

func TestEditFieldsDiffsAgainstOriginal(t *testing.T) {
	course := &schedule.Course{
		ID: "ECON-301-1", Code: "ECON", Number: "301", Section: "1",
		Name: "Intermediate Micro", Instructor: "Smith", Room: "RO-23",
	}
	f := newEditForm(course)

	// Untouched form is a no-op patch.
	if got := f.editFields(); !got.IsZero() {
		t.Errorf("untouched form produced %+v", got)
	}

	f.inputs[fieldInstructor].SetValue("Walker")
	f.inputs[fieldRoom].SetValue("ro-31")

	got := f.editFields()
	if got.Name != nil {
		t.Error("unchanged name was included")
	}
	if got.Instructor == nil || *got.Instructor != "Walker" {
		t.Errorf("instructor = %v", got.Instructor)
	}
	if got.Room == nil || *got.Room != "RO-31" {
		t.Errorf("room = %v, want uppercased RO-31", got.Room)
	}
	if got.Bimodal != nil {
		t.Error("unchanged bimodal was included")
	}
}

func TestEditFieldsClearsValues(t *testing.T) {
	course := &schedule.Course{
		ID: "ECON-301-1", Code: "ECON", Number: "301", Section: "1",
		Instructor: "Smith", Room: "RO-23",
	}
	f := newEditForm(course)
	f.inputs[fieldInstructor].SetValue("")
	f.inputs[fieldRoom].SetValue("")

	got := f.editFields()
	if got.Instructor == nil || *got.Instructor != "" {
		t.Errorf("instructor = %v, want cleared", got.Instructor)
	}
	if got.Room == nil || *got.Room != "" {
		t.Errorf("room = %v, want cleared", got.Room)
	}
}

func TestAddFields(t *testing.T) {
	f := newAddForm()
	f.inputs[addFieldCode].SetValue("econ")
	f.inputs[addFieldNumber].SetValue("301")
	f.inputs[addFieldName].SetValue("Intermediate Micro")
	f.inputs[addFieldSlot].SetValue("mw-b")
	f.inputs[addFieldBimodal].SetValue("y")

	got, err := f.addFields()
	if err != nil {
		t.Fatalf("addFields: %v", err)
	}
	if got.Code != "ECON" || got.Number != "301" {
		t.Errorf("code/number = %s/%s", got.Code, got.Number)
	}
	if got.SlotID != "MW-B" {
		t.Errorf("slot = %s, want uppercased MW-B", got.SlotID)
	}
	if !got.Bimodal {
		t.Error("bimodal not parsed")
	}
}

func TestAddFieldsRequiresCodeAndNumber(t *testing.T) {
	f := newAddForm()
	f.inputs[addFieldCode].SetValue("ECON")
	if _, err := f.addFields(); err == nil {
		t.Error("missing number accepted")
	}
}

func TestFormFocusCycle(t *testing.T) {
	f := newAddForm()
	if f.focus != 0 {
		t.Fatalf("initial focus = %d", f.focus)
	}
	f.prev()
	if f.focus != len(f.inputs)-1 {
		t.Errorf("prev from first = %d", f.focus)
	}
	if !f.onLast() {
		t.Error("onLast false on last field")
	}
	f.next()
	if f.focus != 0 {
		t.Errorf("next from last = %d", f.focus)
	}
}

func TestParseYesNo(t *testing.T) {
	for _, s := range []string{"y", "Yes", "TRUE", "1"} {
		if !parseYesNo(s) {
			t.Errorf("parseYesNo(%q) = false", s)
		}
	}
	for _, s := range []string{"", "n", "no", "false", "maybe"} {
		if parseYesNo(s) {
			t.Errorf("parseYesNo(%q) = true", s)
		}
	}
}
