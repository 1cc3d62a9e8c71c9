package model

import "time"

// EventTime is a start or end marker: either a date-only value (all-day
// events) or a zoned instant.
type EventTime struct {
	// Time holds the instant, or midnight of the date when DateOnly is set.
	Time     time.Time
	DateOnly bool
}

// DateOf builds a date-only marker for the given calendar day.
func DateOf(year int, month time.Month, day int, loc *time.Location) EventTime {
	return EventTime{Time: time.Date(year, month, day, 0, 0, 0, 0, loc), DateOnly: true}
}

// InstantOf builds a zoned-instant marker.
func InstantOf(t time.Time) EventTime {
	return EventTime{Time: t}
}

// IsZero reports whether the marker is missing or could not be parsed.
func (et EventTime) IsZero() bool {
	return et.Time.IsZero()
}

// In resolves the marker in loc. Date-only markers keep their calendar day
// and become local midnight; instants are converted.
func (et EventTime) In(loc *time.Location) time.Time {
	if et.DateOnly {
		y, m, d := et.Time.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	return et.Time.In(loc)
}

// CalendarEvent is a read-only snapshot of one entry in the calendar store.
type CalendarEvent struct {
	ID          string
	Title       string
	Description string
	Location    string
	Start       EventTime
	End         EventTime
	Recurrence  []string // RFC 5545 lines, e.g. "RRULE:FREQ=YEARLY"
	HTMLLink    string
	// SeriesID is set on expanded instances of a recurring event and names
	// the parent series.
	SeriesID string
}

// SeriesKey returns the id that addresses the whole series, or the event's
// own id when it does not recur.
func (e CalendarEvent) SeriesKey() string {
	if e.SeriesID != "" {
		return e.SeriesID
	}
	return e.ID
}

// AllDay reports whether the event has a date-only start.
func (e CalendarEvent) AllDay() bool {
	return e.Start.DateOnly
}
