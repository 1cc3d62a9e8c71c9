package schedule

import (
	"time"

	"calboss/internal/agenda"
	"calboss/internal/catchup"
	"calboss/internal/model"
	"calboss/pkg/datemath"
)

// TodayOutput is today's schedule in start order.
type TodayOutput struct {
	Date   time.Time
	Events []model.CalendarEvent
}

// WeekOutput is the upcoming week grouped by day.
type WeekOutput struct {
	Window datemath.Window
	Days   []agenda.DayBucket
}

// SearchInput is the input for keyword search.
type SearchInput struct {
	Query string
	All   bool // include past events, not only upcoming
}

// SearchOutput is the search result grouped by day.
type SearchOutput struct {
	Days  []agenda.DayBucket
	Count int
}

// AddEventInput describes a new event as the user typed it.
type AddEventInput struct {
	Title       string
	Date        string // YYYY-MM-DD or relative ("tomorrow", "next friday")
	StartTime   string // "14:00", "2PM", "2:30PM"
	EndTime     string
	AllDay      bool
	Location    string
	Description string
	Reminder    string // "15m", "1h"
	Repeat      string // daily|weekly|monthly|yearly
}

// AddEventOutput is the created event plus any ignored input.
type AddEventOutput struct {
	Event    model.CalendarEvent
	Warnings []string
}

// ItemResult is the outcome of one item of a batch mutation.
type ItemResult struct {
	ID    string
	Title string
	OK    bool
	Error string
}

// BatchOutput reports every attempted item.
type BatchOutput struct {
	Results []ItemResult
}

// Failed counts the items that did not succeed.
func (o BatchOutput) Failed() int {
	n := 0
	for _, r := range o.Results {
		if !r.OK {
			n++
		}
	}
	return n
}

// AddNoteInput replaces an event's description.
type AddNoteInput struct {
	EventID string
	Note    string
}

// AddBirthdayInput is a name plus "MM/DD".
type AddBirthdayInput struct {
	Name string
	Date string
}

// BirthdayScope selects the window for ShowBirthdays.
type BirthdayScope string

const (
	BirthdayScopeAll   BirthdayScope = "all"
	BirthdayScopeMonth BirthdayScope = "month"
	BirthdayScopeWeek  BirthdayScope = "week"
	BirthdayScopeToday BirthdayScope = "today"
)

// ShowBirthdaysOutput lists birthdays by month.
type ShowBirthdaysOutput struct {
	Scope  BirthdayScope
	Months []agenda.MonthBucket
	Count  int
}

// SuggestCatchUpsInput names the people to predict for. Empty means
// everyone with catch-up history.
type SuggestCatchUpsInput struct {
	Names []string
}

// SuggestCatchUpsOutput holds one suggestion per person.
type SuggestCatchUpsOutput struct {
	Suggestions []catchup.Suggestion
	Skipped     int // history events ignored for a missing start
}

// AddCatchUpInput schedules a catch-up. Without a start time the event is all-day.
type AddCatchUpInput struct {
	Name          string
	Date          string
	StartTime     string
	EndTime       string
	Reminder      string
	CadenceMonths int // 0 leaves the default cadence
	Note          string
}

// ListCatchUpsOutput is the upcoming catch-ups grouped by day.
type ListCatchUpsOutput struct {
	Days  []agenda.DayBucket
	Count int
}
