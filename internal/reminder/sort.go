package reminder

import (
	"sort"
	"time"
)

// Reminders with no usable slot sort as a far-future time.
const noSlotMinutes = 9999

// urgencyPriority maps the slot scan to a sort rank: active 0, upcoming 1,
// normal 2, past 3. Past reminders sink below untimed ones so the fixed
// screen surfaces what still matters.
func urgencyPriority(sc slotScan) int {
	switch {
	case sc.hasActive:
		return 0
	case sc.hasUpcoming:
		return 1
	case sc.hasPast:
		return 3
	default:
		return 2
	}
}

// SortByUrgency returns a copy of rs ordered for the unattended display:
// priority rank first, then signed proximity to now within equal rank —
// soonest future first, then most-recently-past, future always before past.
// The sort is stable, so remaining ties keep input order.
func SortByUrgency(rs []Reminder, now time.Time) []Reminder {
	curMin := now.Hour()*60 + now.Minute()

	out := make([]Reminder, len(rs))
	copy(out, rs)

	type rank struct {
		priority int
		nearest  int
	}
	ranks := make([]rank, len(out))
	for i, r := range out {
		sc := scanSlots(r.TimeSlots, curMin)
		ranks[i] = rank{priority: urgencyPriority(sc), nearest: noSlotMinutes}
		if sc.nearestIdx >= 0 {
			ranks[i].nearest = sc.nearestMin
		}
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := ranks[idx[a]], ranks[idx[b]]
		if ra.priority != rb.priority {
			return ra.priority < rb.priority
		}

		switch {
		case ra.nearest >= curMin && rb.nearest >= curMin:
			return ra.nearest < rb.nearest // soonest future first
		case ra.nearest < curMin && rb.nearest < curMin:
			return ra.nearest > rb.nearest // most recently past first
		default:
			return ra.nearest >= curMin // future before past
		}
	})

	sorted := make([]Reminder, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}
