// Package announce decides which due reminders get spoken, at most once per
// slot occurrence.
package announce

import (
	"time"
)

// MarkTable records which (reminder, slot) occurrences have already been
// announced. Marks expire after a fixed window, re-arming the slot for its
// next occurrence. The table is owned by the display loop and is not safe
// for concurrent use.
type MarkTable struct {
	ttl   time.Duration
	marks map[string]time.Time // key -> expiry
}

func NewMarkTable(ttl time.Duration) *MarkTable {
	return &MarkTable{
		ttl:   ttl,
		marks: make(map[string]time.Time),
	}
}

func markKey(reminderID, slotTime string) string {
	return reminderID + "@" + slotTime
}

// IsMarked reports whether the occurrence is already announced and the mark
// has not yet expired.
func (t *MarkTable) IsMarked(reminderID, slotTime string, now time.Time) bool {
	expiry, ok := t.marks[markKey(reminderID, slotTime)]
	return ok && now.Before(expiry)
}

// Mark records the occurrence as announced until now + ttl.
func (t *MarkTable) Mark(reminderID, slotTime string, now time.Time) {
	t.marks[markKey(reminderID, slotTime)] = now.Add(t.ttl)
}

// SweepExpired drops expired marks and returns how many were removed.
func (t *MarkTable) SweepExpired(now time.Time) int {
	removed := 0
	for key, expiry := range t.marks {
		if !now.Before(expiry) {
			delete(t.marks, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of live marks, expired or not yet swept included.
func (t *MarkTable) Len() int {
	return len(t.marks)
}
