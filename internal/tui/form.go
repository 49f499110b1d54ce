package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvelez/slate/internal/schedule"
)

// form is the shared edit/add modal: a fixed list of labelled text inputs
// with one focused at a time.
type form struct {
	title    string
	courseID string
	labels   []string
	inputs   []textinput.Model
	focus    int
	orig     *schedule.Course
}

const (
	fieldName = iota
	fieldInstructor
	fieldRoom
	fieldBimodal
)

const (
	addFieldCode = iota
	addFieldNumber
	addFieldName
	addFieldInstructor
	addFieldRoom
	addFieldSlot
	addFieldBimodal
)

func newInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetValue(value)
	in.CharLimit = 80
	in.Width = 32
	return in
}

// newEditForm prefills the modal from the current course so submitting an
// untouched form is a no-op.
func newEditForm(c *schedule.Course) *form {
	f := &form{
		title:    "Edit " + c.Label(),
		courseID: c.ID,
		labels:   []string{"Name", "Instructor", "Room", "Bimodal"},
		orig:     c,
		inputs: []textinput.Model{
			newInput("course name", c.Name),
			newInput("last name, or empty", c.Instructor),
			newInput("e.g. RO-23, or empty", c.Room),
			newInput("y/n", yesNo(c.Bimodal)),
		},
	}
	f.inputs[0].Focus()
	return f
}

func newAddForm() *form {
	f := &form{
		title:  "Add course",
		labels: []string{"Code", "Number", "Name", "Instructor", "Room", "Slot", "Bimodal"},
		inputs: []textinput.Model{
			newInput("e.g. ECON", ""),
			newInput("e.g. 301", ""),
			newInput("course name", ""),
			newInput("last name, or empty", ""),
			newInput("e.g. RO-23, or empty", ""),
			newInput("e.g. MW-B, or empty", ""),
			newInput("y/n", "n"),
		},
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) next() { f.setFocus((f.focus + 1) % len(f.inputs)) }

func (f *form) prev() { f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs)) }

func (f *form) onLast() bool { return f.focus == len(f.inputs)-1 }

func (f *form) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// editFields diffs the inputs against the original course. Nil members leave
// the course untouched, so only real edits reach the authority.
func (f *form) editFields() schedule.Fields {
	var fields schedule.Fields
	if v := f.value(fieldName); v != f.orig.Name {
		fields.Name = &v
	}
	if v := f.value(fieldInstructor); v != f.orig.Instructor {
		fields.Instructor = &v
	}
	if v := strings.ToUpper(f.value(fieldRoom)); v != f.orig.Room {
		fields.Room = &v
	}
	if v := parseYesNo(f.value(fieldBimodal)); v != f.orig.Bimodal {
		fields.Bimodal = &v
	}
	return fields
}

func (f *form) addFields() (schedule.AddFields, error) {
	code := strings.ToUpper(f.value(addFieldCode))
	number := f.value(addFieldNumber)
	if code == "" || number == "" {
		return schedule.AddFields{}, fmt.Errorf("code and number are required")
	}
	return schedule.AddFields{
		Code:       code,
		Number:     number,
		Name:       f.value(addFieldName),
		Instructor: f.value(addFieldInstructor),
		Room:       strings.ToUpper(f.value(addFieldRoom)),
		SlotID:     strings.ToUpper(f.value(addFieldSlot)),
		Bimodal:    parseYesNo(f.value(addFieldBimodal)),
	}, nil
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func parseYesNo(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "true", "1":
		return true
	default:
		return false
	}
}
