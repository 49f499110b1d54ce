package schedule

// Conflicts reports whether a course other than excludeID already occupies
// the (slotID, room) pair. Room equality requires both sides non-empty: two
// roomless courses in the same slot never conflict.
//
// The scan is O(n) over the term's courses, which number in the tens.
func Conflicts(courses []*Course, excludeID, slotID, room string) bool {
	return FindConflict(courses, excludeID, slotID, room) != nil
}

// FindConflict returns the course blocking the (slotID, room) pair, or nil
// when the pair is free.
func FindConflict(courses []*Course, excludeID, slotID, room string) *Course {
	if slotID == "" || room == "" {
		return nil
	}
	for _, c := range courses {
		if c.ID == excludeID {
			continue
		}
		if c.SlotID == slotID && c.Room == room {
			return c
		}
	}
	return nil
}
