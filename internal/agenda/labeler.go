package agenda

import (
	"time"

	"calboss/internal/model"
)

const (
	labelDateLayout    = "Jan 02"
	labelWeekdayLayout = "Monday (Jan 02)"
)

// DayLabel names the calendar day of start relative to now, both resolved in
// loc: "Today (Jun 10)", "Tomorrow (Jun 11)" or "Friday (Jun 13)".
func DayLabel(now time.Time, start model.EventTime, loc *time.Location) string {
	if start.IsZero() {
		return UndatedLabel
	}
	today := dateOf(now.In(loc), loc)
	day := dateOf(start.In(loc), loc)

	switch {
	case day.Equal(today):
		return "Today (" + day.Format(labelDateLayout) + ")"
	case day.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow (" + day.Format(labelDateLayout) + ")"
	default:
		return day.Format(labelWeekdayLayout)
	}
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
