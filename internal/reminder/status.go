package reminder

import (
	"time"
)

// Status classifies a reminder against the current clock.
type Status int

const (
	StatusNormal Status = iota
	StatusPast
	StatusUpcoming
	StatusActive
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusUpcoming:
		return "upcoming"
	case StatusPast:
		return "past"
	default:
		return "normal"
	}
}

// Badge returns the short on-card label for the status, empty for normal.
func (s Status) Badge() string {
	switch s {
	case StatusActive:
		return "现在"
	case StatusUpcoming:
		return "即将"
	case StatusPast:
		return "已过"
	default:
		return ""
	}
}

// Classification window widths, in minutes around a slot time.
const (
	activeWindow   = 15 // |diff| <= 15 -> active
	adjacentWindow = 30 // 0 < diff <= 30 -> upcoming; -30 <= diff < 0 -> past
)

// Classification is the result of classifying one reminder at one instant.
// NearestSlot is nil when the reminder has no parsable slot, which excludes
// it from display entirely.
type Classification struct {
	Status         Status
	NearestSlot    *TimeSlot
	NearestMinutes int
}

// Displayable reports whether the reminder has a usable time slot.
func (c Classification) Displayable() bool {
	return c.NearestSlot != nil
}

// slotScan is the per-slot diff pass shared by the classifier and the
// urgency sorter.
type slotScan struct {
	hasActive   bool
	hasUpcoming bool
	hasPast     bool
	nearestIdx  int // index into TimeSlots, -1 if none
	nearestMin  int // minutes since midnight of the nearest slot
	nearestAbs  int // |diff| of the nearest slot
}

// scanSlots computes signed diffs of every slot against curMin (minutes
// since midnight). Diffs are same-day only: no midnight wraparound, so a
// 23:50 slot and a 00:05 clock are ~23 hours apart, not 15 minutes. That is
// a known limitation, preserved deliberately. Malformed slot times are
// skipped.
func scanSlots(slots []TimeSlot, curMin int) slotScan {
	sc := slotScan{nearestIdx: -1}

	for i, slot := range slots {
		slotMin, err := ParseSlotMinutes(slot.Time)
		if err != nil {
			continue
		}

		diff := slotMin - curMin
		abs := diff
		if abs < 0 {
			abs = -abs
		}

		// First-seen slot wins ties for "nearest".
		if sc.nearestIdx < 0 || abs < sc.nearestAbs {
			sc.nearestIdx = i
			sc.nearestMin = slotMin
			sc.nearestAbs = abs
		}

		switch {
		case abs <= activeWindow:
			sc.hasActive = true
		case diff > 0 && diff <= adjacentWindow:
			sc.hasUpcoming = true
		case diff < 0 && abs <= adjacentWindow:
			sc.hasPast = true
		}
	}

	return sc
}

func (sc slotScan) status() Status {
	switch {
	case sc.hasActive:
		return StatusActive
	case sc.hasUpcoming:
		return StatusUpcoming
	case sc.hasPast:
		return StatusPast
	default:
		return StatusNormal
	}
}

// Classify reduces a reminder to one display status and its nearest slot at
// the given wall-clock time. Frequency is not consulted: weekly, monthly and
// custom reminders classify exactly like daily ones.
func Classify(r Reminder, now time.Time) Classification {
	curMin := now.Hour()*60 + now.Minute()
	sc := scanSlots(r.TimeSlots, curMin)

	if sc.nearestIdx < 0 {
		return Classification{Status: StatusNormal}
	}

	return Classification{
		Status:         sc.status(),
		NearestSlot:    &r.TimeSlots[sc.nearestIdx],
		NearestMinutes: sc.nearestMin,
	}
}
