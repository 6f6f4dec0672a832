package reminder

import (
	"fmt"
	"time"
)

// Type categorizes a reminder. It affects the icon/label and the spoken
// announcement only.
type Type string

const (
	TypeMedication Type = "medication"
	TypeCheckup    Type = "checkup"
	TypeTest       Type = "test"
	TypeOther      Type = "other"
)

// Label returns the display/spoken label for the type.
func (t Type) Label() string {
	switch t {
	case TypeMedication:
		return "用药"
	case TypeCheckup:
		return "检查"
	case TypeTest:
		return "化验"
	case TypeOther:
		return "其他"
	default:
		return "提醒"
	}
}

// Frequency is accepted from the record store but not yet consulted when
// deciding whether a reminder is due today: every active reminder inside its
// date bounds is treated as due daily.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

// TimeSlot is a single clock time at which a reminder is due.
type TimeSlot struct {
	Time  string `json:"time"` // 24-hour "HH:MM", local clock
	Label string `json:"label,omitempty"`
}

// Reminder is owned by the record store; the display treats it as an
// immutable value per tick.
type Reminder struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Type        Type       `json:"type"`
	Description string     `json:"description,omitempty"`
	TimeSlots   []TimeSlot `json:"time_slots"`
	Frequency   Frequency  `json:"frequency"`
	StartDate   string     `json:"start_date,omitempty"` // ISO date, empty = unbounded
	EndDate     string     `json:"end_date,omitempty"`   // ISO date, empty = unbounded
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ActiveOn reports whether the reminder should appear on the given day:
// toggled active and the day falls within [StartDate, EndDate]. A bound that
// is empty or unparsable is treated as unbounded on that side.
func (r Reminder) ActiveOn(day time.Time) bool {
	if !r.IsActive {
		return false
	}

	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	if start, err := time.ParseInLocation("2006-01-02", r.StartDate, day.Location()); err == nil {
		if date.Before(start) {
			return false
		}
	}
	if end, err := time.ParseInLocation("2006-01-02", r.EndDate, day.Location()); err == nil {
		if date.After(end) {
			return false
		}
	}

	return true
}

// ParseSlotMinutes converts an "HH:MM" slot time to minutes since midnight.
func ParseSlotMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid slot time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
