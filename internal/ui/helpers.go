package ui

import (
	"fmt"
	"strings"
	"time"

	"carescreen/internal/reminder"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type Styles struct {
	Normal   lipgloss.Style
	Active   lipgloss.Style
	Upcoming lipgloss.Style
	Past     lipgloss.Style
	Clock    lipgloss.Style
	Date     lipgloss.Style
	Online   lipgloss.Style
	Offline  lipgloss.Style
	Selected lipgloss.Style
	Badge    lipgloss.Style
	Dim      lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Active: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("28")).
			Bold(true),
		Upcoming: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Past: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true),
		Clock: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Date: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		Online: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")),
		Offline: lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Badge: lipgloss.NewStyle().
			Bold(true),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
	}
}

// statusStyle maps a classification status to its card style.
func (m *Model) statusStyle(status reminder.Status) lipgloss.Style {
	switch status {
	case reminder.StatusActive:
		return m.styles.Active
	case reminder.StatusUpcoming:
		return m.styles.Upcoming
	case reminder.StatusPast:
		return m.styles.Past
	default:
		return m.styles.Normal
	}
}

var chineseWeekdays = [...]string{
	"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六",
}

// chineseDate renders the header date line, e.g. "2024年3月15日 星期五".
func (m *Model) chineseDate(t time.Time) string {
	return fmt.Sprintf("%s %s", t.Format(m.config.DateFormat), chineseWeekdays[t.Weekday()])
}

// renderCard renders one reminder row for the card list.
func (m *Model) renderCard(item displayItem, selected bool, width int) string {
	r := item.reminder
	cls := item.cls
	style := m.statusStyle(cls.Status)

	cursor := "  "
	if selected {
		cursor = m.styles.Selected.Render("▶ ")
	}

	badge := cls.Status.Badge()
	if badge != "" {
		badge = " " + m.styles.Badge.Render(badge)
	}

	head := fmt.Sprintf("%s（%s）%s", style.Render(cls.NearestSlot.Time), r.Type.Label(), style.Render(r.Title))
	lines := []string{cursor + head + badge}

	if label := cls.NearestSlot.Label; label != "" {
		lines[0] += m.styles.Dim.Render(" · " + label)
	}

	if r.Description != "" {
		wrapped := wordwrap.String(r.Description, max(width-8, 20))
		for _, line := range strings.Split(wrapped, "\n") {
			lines = append(lines, "       "+m.styles.Dim.Render(line))
		}
	}

	if extra := extraSlots(r.TimeSlots, cls.NearestSlot); extra != "" {
		lines = append(lines, "       "+m.styles.Dim.Render("其他时间 "+extra))
	}

	return strings.Join(lines, "\n")
}

// extraSlots lists the slots other than the nearest one.
func extraSlots(slots []reminder.TimeSlot, nearest *reminder.TimeSlot) string {
	if len(slots) <= 1 {
		return ""
	}

	var parts []string
	for i := range slots {
		if &slots[i] == nearest {
			continue
		}
		part := slots[i].Time
		if slots[i].Label != "" {
			part += "（" + slots[i].Label + "）"
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, " ")
}
