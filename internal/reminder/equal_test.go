package reminder

import (
	"testing"
	"time"
)

func TestEqual(t *testing.T) {
	updated := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

	base := func() []Reminder {
		return []Reminder{
			{
				ID:        "r1",
				Title:     "晨间用药",
				IsActive:  true,
				TimeSlots: []TimeSlot{{Time: "08:00", Label: "早餐后"}},
				UpdatedAt: updated,
			},
			{
				ID:        "r2",
				Title:     "血压测量",
				IsActive:  true,
				TimeSlots: []TimeSlot{{Time: "10:00"}},
				UpdatedAt: updated,
			},
		}
	}

	tests := []struct {
		name     string
		mutate   func([]Reminder) []Reminder
		expected bool
	}{
		{"identical", func(rs []Reminder) []Reminder { return rs }, true},
		{
			"different order same content",
			func(rs []Reminder) []Reminder { return []Reminder{rs[1], rs[0]} },
			true,
		},
		{
			"missing id",
			func(rs []Reminder) []Reminder { return rs[:1] },
			false,
		},
		{
			"swapped id",
			func(rs []Reminder) []Reminder { rs[1].ID = "r3"; return rs },
			false,
		},
		{
			"title changed",
			func(rs []Reminder) []Reminder { rs[0].Title = "早间用药"; return rs },
			false,
		},
		{
			"active toggled",
			func(rs []Reminder) []Reminder { rs[0].IsActive = false; return rs },
			false,
		},
		{
			"slot time changed",
			func(rs []Reminder) []Reminder { rs[0].TimeSlots[0].Time = "08:30"; return rs },
			false,
		},
		{
			"slot label changed",
			func(rs []Reminder) []Reminder { rs[0].TimeSlots[0].Label = "睡前"; return rs },
			false,
		},
		{
			"slot added",
			func(rs []Reminder) []Reminder {
				rs[0].TimeSlots = append(rs[0].TimeSlots, TimeSlot{Time: "20:00"})
				return rs
			},
			false,
		},
		{
			"updated timestamp changed",
			func(rs []Reminder) []Reminder { rs[1].UpdatedAt = updated.Add(time.Minute); return rs },
			false,
		},
		{
			"description change alone is invisible",
			func(rs []Reminder) []Reminder { rs[0].Description = "饭后半小时"; return rs },
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(base(), tt.mutate(base())); got != tt.expected {
				t.Errorf("Equal mismatch: got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEqualEmpty(t *testing.T) {
	if !Equal(nil, nil) {
		t.Errorf("Equal(nil, nil) = false, want true")
	}
	if Equal(nil, []Reminder{{ID: "r1"}}) {
		t.Errorf("Equal(nil, one) = true, want false")
	}
}
