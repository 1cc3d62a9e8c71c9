package agenda

import (
	"time"

	"calboss/internal/model"
)

// UndatedLabel names the bucket holding events without a usable start.
const UndatedLabel = "Undated"

// DayBucket is one labelled day of a schedule view.
type DayBucket struct {
	Label  string
	Date   time.Time // local midnight of the bucket's day
	Events []model.CalendarEvent
}

// GroupByDay buckets events by DayLabel. Buckets appear in the order their
// label is first seen and events keep their input order, so a start-ordered
// input yields chronological buckets. Every input event lands in exactly one
// bucket; events without a start go to a trailing Undated bucket.
func GroupByDay(now time.Time, events []model.CalendarEvent, loc *time.Location) []DayBucket {
	buckets := make([]DayBucket, 0)
	index := make(map[string]int)
	var undated []model.CalendarEvent

	for _, ev := range events {
		if ev.Start.IsZero() {
			undated = append(undated, ev)
			continue
		}
		label := DayLabel(now, ev.Start, loc)
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, DayBucket{
				Label: label,
				Date:  dateOf(ev.Start.In(loc), loc),
			})
		}
		buckets[i].Events = append(buckets[i].Events, ev)
	}

	if len(undated) > 0 {
		buckets = append(buckets, DayBucket{Label: UndatedLabel, Events: undated})
	}
	return buckets
}

// OnDate keeps the events whose start falls on day's calendar date in loc.
func OnDate(day time.Time, events []model.CalendarEvent, loc *time.Location) []model.CalendarEvent {
	want := dateOf(day.In(loc), loc)
	out := make([]model.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev.Start.IsZero() {
			continue
		}
		if dateOf(ev.Start.In(loc), loc).Equal(want) {
			out = append(out, ev)
		}
	}
	return out
}
