package repository

import (
	"calboss/internal/model"
	"calboss/pkg/datemath"
)

// ListEventsOptions holds the parameters for listing events.
type ListEventsOptions struct {
	Window     datemath.Window // half-open [Start, End)
	Query      string          // free-text match, may over-match
	MaxResults int64           // 0 means no cap
}

// InsertEventOptions holds the parameters for creating an event.
// All-day events carry date-only Start/End markers with End exclusive.
type InsertEventOptions struct {
	Title       string
	Description string
	Location    string
	Start       model.EventTime
	End         model.EventTime
	Recurrence  []string // e.g. "RRULE:FREQ=YEARLY"
	// ReminderMinutes overrides the default popup reminders. Nil keeps the defaults.
	ReminderMinutes []int64
}

// UpdateEventOptions holds the fields an update may change.
type UpdateEventOptions struct {
	ID          string
	Description string
}
