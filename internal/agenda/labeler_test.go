package agenda_test

import (
	"fmt"
	"testing"
	"time"

	"calboss/internal/agenda"
	"calboss/internal/model"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %q: %v", name, err)
	}
	return loc
}

func TestDayLabel(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, ny)

	tests := []struct {
		name  string
		start model.EventTime
		want  string
	}{
		{name: "today instant", start: model.InstantOf(time.Date(2025, 6, 10, 9, 0, 0, 0, ny)), want: "Today (Jun 10)"},
		{name: "tomorrow instant", start: model.InstantOf(time.Date(2025, 6, 11, 9, 0, 0, 0, ny)), want: "Tomorrow (Jun 11)"},
		{name: "weekday instant", start: model.InstantOf(time.Date(2025, 6, 13, 9, 0, 0, 0, ny)), want: "Friday (Jun 13)"},
		{name: "date-only today", start: model.DateOf(2025, time.June, 10, time.UTC), want: "Today (Jun 10)"},
		{name: "date-only tomorrow", start: model.DateOf(2025, time.June, 11, time.UTC), want: "Tomorrow (Jun 11)"},
		{name: "utc instant late evening local", start: model.InstantOf(time.Date(2025, 6, 11, 2, 0, 0, 0, time.UTC)), want: "Today (Jun 10)"},
		{name: "utc instant before local midnight", start: model.InstantOf(time.Date(2025, 6, 12, 3, 30, 0, 0, time.UTC)), want: "Tomorrow (Jun 11)"},
		{name: "single digit day is padded", start: model.DateOf(2025, time.July, 3, ny), want: "Thursday (Jul 03)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agenda.DayLabel(now, tt.start, ny); got != tt.want {
				t.Errorf("DayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDayLabelNowInOtherZone(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	// 01:00 UTC on Jun 11 is 21:00 Jun 10 in New York.
	now := time.Date(2025, 6, 11, 1, 0, 0, 0, time.UTC)
	start := model.InstantOf(time.Date(2025, 6, 10, 23, 0, 0, 0, ny))

	if got := agenda.DayLabel(now, start, ny); got != "Today (Jun 10)" {
		t.Errorf("DayLabel() = %q, want Today (Jun 10)", got)
	}
}

func TestDayLabelStability(t *testing.T) {
	loc := mustLoad(t, "Europe/Berlin")
	now := time.Date(2025, 3, 28, 12, 0, 0, 0, loc) // spans the DST switch on Mar 30

	for offset := 0; offset < 60; offset++ {
		day := time.Date(2025, 3, 28+offset, 7, 15, 0, 0, loc)
		got := agenda.DayLabel(now, model.InstantOf(day), loc)

		var want string
		switch offset {
		case 0:
			want = fmt.Sprintf("Today (%s)", day.Format("Jan 02"))
		case 1:
			want = fmt.Sprintf("Tomorrow (%s)", day.Format("Jan 02"))
		default:
			want = fmt.Sprintf("%s (%s)", day.Weekday(), day.Format("Jan 02"))
		}
		if got != want {
			t.Fatalf("offset %d: DayLabel() = %q, want %q", offset, got, want)
		}
	}
}
