package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/nvelez/slate/internal/history"
	"github.com/nvelez/slate/internal/schedule"
)

const systemPrompt = `You are a scheduling assistant for a university business department.
You are given the draft schedule for one term, the faculty roster, and notes
from past offerings. Point out staffing gaps, courses placed outside their
usual rotation, instructors teaching in back-to-back slots, and anything else
a department chair would want to fix before publishing. Be concise and
concrete; refer to courses by code and number.`

// Advisor turns the current schedule into advice. Read-only by
// construction: it receives copies and only returns text.
type Advisor struct {
	client Client
}

// New creates an advisor backed by an LLM client.
func New(client Client) *Advisor {
	return &Advisor{client: client}
}

// Input is one advice request.
type Input struct {
	Term    schedule.Term
	Year    int
	Courses []*schedule.Course
	Faculty []string
	Archive history.Archive
}

// Advise asks the LLM for staffing and placement advice on the draft.
func (a *Advisor) Advise(ctx context.Context, in Input) (string, error) {
	advice, err := a.client.Chat(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildPrompt(in)},
	})
	if err != nil {
		return "", fmt.Errorf("requesting advice: %w", err)
	}
	return strings.TrimSpace(advice), nil
}

// buildPrompt renders the schedule grid, roster, and archive notes as text.
func buildPrompt(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Draft %s %d schedule:\n\n", termTitle(in.Term), in.Year)

	bySlot := make(map[string][]*schedule.Course)
	var unscheduled []*schedule.Course
	for _, c := range in.Courses {
		if c.SlotID == "" {
			unscheduled = append(unscheduled, c)
			continue
		}
		bySlot[c.SlotID] = append(bySlot[c.SlotID], c)
	}

	for _, slot := range schedule.Slots() {
		courses := bySlot[slot.ID]
		if len(courses) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", slot.Label)
		for _, c := range courses {
			fmt.Fprintf(&b, "  - %s %s", c.Label(), courseDetail(c))
		}
	}

	if len(unscheduled) > 0 {
		b.WriteString("Not yet scheduled:\n")
		for _, c := range unscheduled {
			fmt.Fprintf(&b, "  - %s %s", c.Label(), courseDetail(c))
		}
	}

	if len(in.Faculty) > 0 {
		fmt.Fprintf(&b, "\nFaculty roster: %s\n", strings.Join(in.Faculty, ", "))
	}

	if notes := archiveNotes(in); len(notes) > 0 {
		b.WriteString("\nNotes from past offerings:\n")
		for _, n := range notes {
			fmt.Fprintf(&b, "  - %s\n", n)
		}
	}

	return b.String()
}

func courseDetail(c *schedule.Course) string {
	var parts []string
	if c.Instructor != "" {
		parts = append(parts, c.Instructor)
	} else {
		parts = append(parts, "NO INSTRUCTOR")
	}
	if c.Room != "" {
		parts = append(parts, c.Room)
	}
	if c.Bimodal {
		parts = append(parts, "bimodal")
	}
	return "(" + strings.Join(parts, ", ") + ")\n"
}

// archiveNotes flags departures from a course's history: a rotation the
// draft ignores, or a different instructor than last time.
func archiveNotes(in Input) []string {
	var notes []string
	for _, c := range in.Courses {
		rec := in.Archive.Lookup(c.Code, c.Number)
		if rec == nil {
			continue
		}

		if !rec.OfferedIn(termTitle(in.Term), in.Year) {
			notes = append(notes, fmt.Sprintf("%s is usually offered %s", c.Label(), rec.Offered))
		}

		if last, ok := rec.LastTaughtBy(); ok && c.Instructor != "" && c.Instructor != last {
			notes = append(notes, fmt.Sprintf("%s was last taught by %s, now assigned to %s", c.Label(), last, c.Instructor))
		}
	}
	return notes
}

func termTitle(term schedule.Term) string {
	s := string(term)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
