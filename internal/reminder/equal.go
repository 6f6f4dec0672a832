package reminder

// Equal reports whether two reminder sets are the same for display
// purposes: identical id membership and, per id, identical title, active
// flag, time slots and update timestamp. The display controller uses this
// to skip swapping in a freshly fetched set that did not actually change.
func Equal(a, b []Reminder) bool {
	if len(a) != len(b) {
		return false
	}

	byID := make(map[string]Reminder, len(a))
	for _, r := range a {
		byID[r.ID] = r
	}

	for _, nr := range b {
		or, ok := byID[nr.ID]
		if !ok {
			return false
		}
		if or.Title != nr.Title || or.IsActive != nr.IsActive {
			return false
		}
		if !or.UpdatedAt.Equal(nr.UpdatedAt) {
			return false
		}
		if !slotsEqual(or.TimeSlots, nr.TimeSlots) {
			return false
		}
	}

	return true
}

func slotsEqual(a, b []TimeSlot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
