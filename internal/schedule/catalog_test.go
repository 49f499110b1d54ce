package schedule

import "testing"

func TestValidSlot(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"MW-A", true},
		{"TR-K", true},
		{"ASYNCH", true},
		{"", true}, // empty means unscheduled
		{"MW-Z", false},
		{"mw-a", false},
	}

	for _, tt := range tests {
		if got := ValidSlot(tt.id); got != tt.want {
			t.Errorf("ValidSlot(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestSlotIndex(t *testing.T) {
	if got := SlotIndex("MW-A"); got != 0 {
		t.Errorf("SlotIndex(MW-A) = %d, want 0", got)
	}
	if got := SlotIndex("ASYNCH"); got != len(Slots())-1 {
		t.Errorf("SlotIndex(ASYNCH) = %d, want %d", got, len(Slots())-1)
	}
	if got := SlotIndex("nope"); got != -1 {
		t.Errorf("SlotIndex(nope) = %d, want -1", got)
	}
}

func TestSlotLabel(t *testing.T) {
	if got := SlotLabel("MW-B"); got != "MW 9:50-11:15" {
		t.Errorf("SlotLabel(MW-B) = %q", got)
	}
	// Unknown ids pass through so stale data still renders.
	if got := SlotLabel("OLD-SLOT"); got != "OLD-SLOT" {
		t.Errorf("SlotLabel(OLD-SLOT) = %q", got)
	}
}

func TestValidRoom(t *testing.T) {
	if !ValidRoom("RO-23") {
		t.Error("RO-23 should be a valid room")
	}
	if !ValidRoom("") {
		t.Error("empty room should be valid (no assignment)")
	}
	if ValidRoom("RO-999") {
		t.Error("RO-999 should not be a valid room")
	}
}

func TestCatalogCopies(t *testing.T) {
	// Mutating the returned slices must not affect the catalog.
	s := Slots()
	s[0].ID = "corrupted"
	if Slots()[0].ID != "MW-A" {
		t.Error("Slots() returned a shared slice")
	}

	r := Rooms()
	r[0] = "corrupted"
	if Rooms()[0] == "corrupted" {
		t.Error("Rooms() returned a shared slice")
	}
}
