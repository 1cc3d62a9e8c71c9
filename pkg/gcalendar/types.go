package gcalendar

import "time"

// CreateEventRequest is the input for creating a Google Calendar event.
// All-day events use StartDate/EndDate (YYYY-MM-DD, end exclusive);
// timed events use StartTime/EndTime.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	Location    string
	AllDay      bool
	StartDate   string
	EndDate     string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string   // e.g. "America/New_York"
	Recurrence  []string // e.g. "RRULE:FREQ=YEARLY"
	// ReminderMinutes overrides the calendar's default popup reminders.
	// Nil keeps the defaults.
	ReminderMinutes []int64
}

// Event is a simplified representation of a Google Calendar event.
// StartDate/EndDate are set for all-day events, StartTime/EndTime otherwise.
type Event struct {
	ID               string
	Summary          string
	Description      string
	HtmlLink         string
	StartTime        time.Time
	EndTime          time.Time
	StartDate        string
	EndDate          string
	Location         string
	Recurrence       []string
	RecurringEventID string
}

// AllDay reports whether the event spans whole days.
func (e Event) AllDay() bool {
	return e.StartDate != ""
}

// ListEventsRequest is the input for listing Google Calendar events.
// Recurring events are expanded into single instances ordered by start.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	Query      string
	MaxResults int64
}
