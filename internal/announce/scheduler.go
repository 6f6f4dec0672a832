package announce

import (
	"log"
	"time"

	"carescreen/internal/reminder"
)

const (
	// announceWindow is how close (minutes, either side) the clock must be
	// to a slot time before it is spoken. Much tighter than the display's
	// "active" window: announcements fire only around the exact time.
	announceWindow = 2

	// markTTL re-arms a spoken slot for its next occurrence.
	markTTL = 30 * time.Minute

	// speakDelay debounces against tick jitter and page-load bursts.
	speakDelay = time.Second
)

// Speaker voices one reminder announcement. Implemented by voice.Service.
type Speaker interface {
	AnnounceReminder(title string, typ reminder.Type, slotTime, description string) error
}

// Scheduler walks the reminder set once per clock tick and speaks every due
// slot exactly once per occurrence. Speech runs on a deferred timer so the
// tick never blocks on the engine, and failures are logged, never retried.
type Scheduler struct {
	marks   *MarkTable
	speaker Speaker

	// after defers a function call; replaced in tests for determinism.
	after func(d time.Duration, f func())
	logf  func(format string, args ...any)
}

func NewScheduler(speaker Speaker) *Scheduler {
	return &Scheduler{
		marks:   NewMarkTable(markTTL),
		speaker: speaker,
		after:   func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		logf:    log.Printf,
	}
}

// Check runs one announcement pass at the given wall-clock time and returns
// how many announcements it scheduled.
func (s *Scheduler) Check(reminders []reminder.Reminder, now time.Time) int {
	s.marks.SweepExpired(now)

	curMin := now.Hour()*60 + now.Minute()
	scheduled := 0

	for _, r := range reminders {
		if !r.IsActive {
			continue
		}

		for _, slot := range r.TimeSlots {
			slotMin, err := reminder.ParseSlotMinutes(slot.Time)
			if err != nil {
				continue
			}

			diff := slotMin - curMin
			if diff < -announceWindow || diff > announceWindow {
				continue
			}
			if s.marks.IsMarked(r.ID, slot.Time, now) {
				continue
			}

			// Marked immediately, before the deferred speech runs and
			// regardless of whether it will succeed.
			s.marks.Mark(r.ID, slot.Time, now)
			scheduled++

			s.after(speakDelay, func() {
				if err := s.speaker.AnnounceReminder(r.Title, r.Type, slot.Time, r.Description); err != nil {
					s.logf("announcement failed for %s at %s: %v", r.ID, slot.Time, err)
				}
			})
		}
	}

	return scheduled
}
