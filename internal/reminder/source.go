package reminder

import (
	"time"
)

// Source is a record store that can provide the active reminder set.
type Source interface {
	// FetchActive returns reminders that are active on the given day
	// (is_active set and the day within the reminder's date bounds).
	FetchActive(today time.Time) ([]Reminder, error)
	// Watch returns a channel that sends an event whenever the underlying
	// store changes. Returns a nil channel if the store cannot push
	// changes; callers fall back to polling.
	Watch() (<-chan ChangeEvent, error)
	// StopWatching releases any change subscription.
	StopWatching() error
}

// ChangeEvent signals that the reminder collection changed upstream.
type ChangeEvent struct {
	Origin    string
	Timestamp time.Time
}
