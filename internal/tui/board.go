package tui

import (
	"sort"

	"github.com/nvelez/slate/internal/schedule"
)

// unscheduledTitle heads the pool column that trails the slot columns.
const unscheduledTitle = "Unscheduled"

// column is one rendered board column: a catalog slot, or the trailing
// unscheduled pool with an empty slot id.
type column struct {
	slotID  string
	title   string
	courses []*schedule.Course
}

// position addresses a card on the board.
type position struct {
	Col int
	Row int
}

// buildColumns lays the courses out in catalog order, the unscheduled pool
// last. Cards within a column sort by label so the board is stable across
// resyncs.
func buildColumns(courses []*schedule.Course) []column {
	slots := schedule.Slots()
	cols := make([]column, 0, len(slots)+1)

	bySlot := make(map[string][]*schedule.Course)
	var pool []*schedule.Course
	for _, c := range courses {
		if c.SlotID == "" || schedule.SlotIndex(c.SlotID) < 0 {
			pool = append(pool, c)
			continue
		}
		bySlot[c.SlotID] = append(bySlot[c.SlotID], c)
	}

	for _, slot := range slots {
		group := bySlot[slot.ID]
		sort.Slice(group, func(i, j int) bool { return group[i].Label() < group[j].Label() })
		cols = append(cols, column{slotID: slot.ID, title: slot.Label, courses: group})
	}

	sort.Slice(pool, func(i, j int) bool { return pool[i].Label() < pool[j].Label() })
	cols = append(cols, column{slotID: "", title: unscheduledTitle, courses: pool})

	return cols
}

// clamp keeps the cursor on an existing card where possible. An empty board
// pins it to the origin.
func clamp(cols []column, pos position) position {
	if len(cols) == 0 {
		return position{}
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if pos.Col >= len(cols) {
		pos.Col = len(cols) - 1
	}
	rows := len(cols[pos.Col].courses)
	if rows == 0 {
		pos.Row = 0
		return pos
	}
	if pos.Row < 0 {
		pos.Row = 0
	}
	if pos.Row >= rows {
		pos.Row = rows - 1
	}
	return pos
}

// courseAt returns the card under the cursor, or nil for an empty column.
func courseAt(cols []column, pos position) *schedule.Course {
	pos = clamp(cols, pos)
	if pos.Col >= len(cols) || len(cols[pos.Col].courses) == 0 {
		return nil
	}
	return cols[pos.Col].courses[pos.Row]
}

// findCourse locates a course id on the board.
func findCourse(cols []column, id string) (position, bool) {
	for ci, col := range cols {
		for ri, c := range col.courses {
			if c.ID == id {
				return position{Col: ci, Row: ri}, true
			}
		}
	}
	return position{}, false
}

// nextOccupied moves the cursor left or right to the nearest column with
// cards, so navigation skips empty stretches of the grid.
func nextOccupied(cols []column, pos position, dir int) position {
	for col := pos.Col + dir; col >= 0 && col < len(cols); col += dir {
		if len(cols[col].courses) > 0 {
			return clamp(cols, position{Col: col, Row: pos.Row})
		}
	}
	return clamp(cols, pos)
}
