package schedule

// Slot is a fixed weekly meeting pattern from the closed catalog.
type Slot struct {
	ID    string
	Label string
}

// The slot catalog mirrors the department's standard meeting grid.
// Order matters: exports and the board render columns in this order.
var slots = []Slot{
	{ID: "MW-A", Label: "MW 8:15-9:40"},
	{ID: "MW-B", Label: "MW 9:50-11:15"},
	{ID: "MW-C", Label: "MW 11:30-12:55"},
	{ID: "MW-D", Label: "MW 1:05-2:30"},
	{ID: "MW-E", Label: "MW 2:40-4:05"},
	{ID: "TR-G", Label: "TR 8:15-9:40"},
	{ID: "TR-H", Label: "TR 9:50-11:15"},
	{ID: "TR-I", Label: "TR 11:25-12:50"},
	{ID: "TR-J", Label: "TR 2:00-3:25"},
	{ID: "TR-K", Label: "TR 3:35-5:00"},
	{ID: "M-EVE", Label: "M Eve"},
	{ID: "T-EVE", Label: "T Eve"},
	{ID: "W-EVE", Label: "W Eve"},
	{ID: "TR-EVE", Label: "TR Eve"},
	{ID: "SAT", Label: "Saturday"},
	{ID: "ASYNCH", Label: "Asynchronous"},
}

var rooms = []string{
	"RO-12",
	"RO-18",
	"RO-23",
	"RO-31",
	"RO-105",
	"RO-204",
	"LIB-2",
	"VIRTUAL",
}

// Slots returns the slot catalog in display order.
func Slots() []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// Rooms returns the room catalog.
func Rooms() []string {
	out := make([]string, len(rooms))
	copy(out, rooms)
	return out
}

// ValidSlot reports whether id names a catalog slot. The empty id is valid
// and means unscheduled.
func ValidSlot(id string) bool {
	return id == "" || SlotIndex(id) >= 0
}

// SlotIndex returns the display-order index of a slot, or -1 if unknown.
func SlotIndex(id string) int {
	for i, s := range slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// SlotLabel returns the human-readable label for a slot id.
// Unknown ids are returned as-is so stale data still renders.
func SlotLabel(id string) string {
	if i := SlotIndex(id); i >= 0 {
		return slots[i].Label
	}
	return id
}

// ValidRoom reports whether name is in the room catalog. The empty name is
// valid and means no room assigned.
func ValidRoom(name string) bool {
	if name == "" {
		return true
	}
	for _, r := range rooms {
		if r == name {
			return true
		}
	}
	return false
}
