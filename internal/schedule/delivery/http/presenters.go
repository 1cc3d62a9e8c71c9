package http

import (
	"net/http"
	"strings"

	"calboss/internal/agenda"
	"calboss/internal/catchup"
	"calboss/internal/model"
	"calboss/internal/schedule"
	"calboss/pkg/response"
)

// --- Request DTOs ---

type searchReq struct {
	Query string `form:"q"`
	All   bool   `form:"all"`
}

func (r searchReq) validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return response.NewHTTPError(http.StatusBadRequest, schedule.ErrEmptyQuery.Error())
	}
	return nil
}

func (r searchReq) toInput() schedule.SearchInput {
	return schedule.SearchInput{Query: r.Query, All: r.All}
}

// ---

type addEventReq struct {
	Title       string `json:"title"       binding:"required,max=255"`
	Date        string `json:"date"        binding:"required"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	AllDay      bool   `json:"all_day"`
	Location    string `json:"location"    binding:"max=255"`
	Description string `json:"description" binding:"max=4000"`
	Reminder    string `json:"reminder"`
	Repeat      string `json:"repeat"      binding:"omitempty,oneof=daily weekly monthly yearly"`
}

func (r addEventReq) validate() error { return nil }

func (r addEventReq) toInput() schedule.AddEventInput {
	return schedule.AddEventInput{
		Title:       r.Title,
		Date:        r.Date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		AllDay:      r.AllDay,
		Location:    r.Location,
		Description: r.Description,
		Reminder:    r.Reminder,
		Repeat:      r.Repeat,
	}
}

// ---

type removeEventsReq struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

func (r removeEventsReq) validate() error { return nil }

// ---

type addNoteReq struct {
	ID   string `json:"-"` // populated from URI param
	Note string `json:"note" binding:"required,max=4000"`
}

func (r addNoteReq) validate() error {
	if r.ID == "" {
		return response.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	return nil
}

func (r addNoteReq) toInput() schedule.AddNoteInput {
	return schedule.AddNoteInput{EventID: r.ID, Note: r.Note}
}

// ---

type addBirthdayReq struct {
	Name string `json:"name" binding:"required,max=255"`
	Date string `json:"date" binding:"required"` // MM/DD
}

func (r addBirthdayReq) validate() error { return nil }

func (r addBirthdayReq) toInput() schedule.AddBirthdayInput {
	return schedule.AddBirthdayInput{Name: r.Name, Date: r.Date}
}

// ---

type suggestReq struct {
	Names []string
}

func (r suggestReq) toInput() schedule.SuggestCatchUpsInput {
	return schedule.SuggestCatchUpsInput{Names: r.Names}
}

// ---

type addCatchUpReq struct {
	Name          string `json:"name"           binding:"required,max=255"`
	Date          string `json:"date"           binding:"required"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Reminder      string `json:"reminder"`
	CadenceMonths int    `json:"cadence_months" binding:"min=0,max=120"`
	Note          string `json:"note"           binding:"max=4000"`
}

func (r addCatchUpReq) validate() error { return nil }

func (r addCatchUpReq) toInput() schedule.AddCatchUpInput {
	return schedule.AddCatchUpInput{
		Name:          r.Name,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Reminder:      r.Reminder,
		CadenceMonths: r.CadenceMonths,
		Note:          r.Note,
	}
}

// --- Response DTOs ---

type eventResp struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	AllDay      bool     `json:"all_day"`
	Start       any      `json:"start"`
	End         any      `json:"end,omitempty"`
	Recurrence  []string `json:"recurrence,omitempty"`
	Link        string   `json:"link,omitempty"`
}

// eventTime renders date-only markers as a date and instants as a datetime.
func eventTime(et model.EventTime) any {
	if et.IsZero() {
		return nil
	}
	if et.DateOnly {
		return response.Date(et.Time)
	}
	return response.DateTime(et.Time)
}

func newEventResp(ev model.CalendarEvent) eventResp {
	return eventResp{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		AllDay:      ev.AllDay(),
		Start:       eventTime(ev.Start),
		End:         eventTime(ev.End),
		Recurrence:  ev.Recurrence,
		Link:        ev.HTMLLink,
	}
}

func newEventsResp(events []model.CalendarEvent) []eventResp {
	out := make([]eventResp, len(events))
	for i, ev := range events {
		out[i] = newEventResp(ev)
	}
	return out
}

type dayResp struct {
	Label  string        `json:"label"`
	Date   response.Date `json:"date"`
	Events []eventResp   `json:"events"`
}

func newDaysResp(days []agenda.DayBucket) []dayResp {
	out := make([]dayResp, len(days))
	for i, d := range days {
		out[i] = dayResp{Label: d.Label, Date: response.Date(d.Date), Events: newEventsResp(d.Events)}
	}
	return out
}

type todayResp struct {
	Date   response.Date `json:"date"`
	Events []eventResp   `json:"events"`
}

func (h *handler) newTodayResp(out schedule.TodayOutput) todayResp {
	return todayResp{Date: response.Date(out.Date), Events: newEventsResp(out.Events)}
}

type weekResp struct {
	From response.DateTime `json:"from"`
	To   response.DateTime `json:"to"`
	Days []dayResp         `json:"days"`
}

func (h *handler) newWeekResp(out schedule.WeekOutput) weekResp {
	return weekResp{
		From: response.DateTime(out.Window.Start),
		To:   response.DateTime(out.Window.End),
		Days: newDaysResp(out.Days),
	}
}

type daysResp struct {
	Count int       `json:"count"`
	Days  []dayResp `json:"days"`
}

func (h *handler) newSearchResp(out schedule.SearchOutput) daysResp {
	return daysResp{Count: out.Count, Days: newDaysResp(out.Days)}
}

func (h *handler) newListCatchUpsResp(out schedule.ListCatchUpsOutput) daysResp {
	return daysResp{Count: out.Count, Days: newDaysResp(out.Days)}
}

type addEventResp struct {
	Event    eventResp `json:"event"`
	Warnings []string  `json:"warnings,omitempty"`
}

func (h *handler) newAddEventResp(out schedule.AddEventOutput) addEventResp {
	return addEventResp{Event: newEventResp(out.Event), Warnings: out.Warnings}
}

type itemResultResp struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type batchResp struct {
	Removed int              `json:"removed"`
	Failed  int              `json:"failed"`
	Results []itemResultResp `json:"results"`
}

func (h *handler) newBatchResp(out schedule.BatchOutput) batchResp {
	results := make([]itemResultResp, len(out.Results))
	for i, r := range out.Results {
		results[i] = itemResultResp{ID: r.ID, Title: r.Title, OK: r.OK, Error: r.Error}
	}
	failed := out.Failed()
	return batchResp{Removed: len(results) - failed, Failed: failed, Results: results}
}

type birthdayResp struct {
	Name    string        `json:"name"`
	Day     int           `json:"day"`
	Date    response.Date `json:"date"`
	EventID string        `json:"event_id"`
}

type monthResp struct {
	Month     string         `json:"month"`
	Birthdays []birthdayResp `json:"birthdays"`
}

type birthdaysResp struct {
	Scope  string      `json:"scope"`
	Count  int         `json:"count"`
	Months []monthResp `json:"months"`
}

func (h *handler) newBirthdaysResp(out schedule.ShowBirthdaysOutput) birthdaysResp {
	months := make([]monthResp, len(out.Months))
	for i, m := range out.Months {
		entries := make([]birthdayResp, len(m.Entries))
		for j, e := range m.Entries {
			entries[j] = birthdayResp{Name: e.Name, Day: e.Day, Date: response.Date(e.Date), EventID: e.EventID}
		}
		months[i] = monthResp{Month: m.Name(), Birthdays: entries}
	}
	return birthdaysResp{Scope: string(out.Scope), Count: out.Count, Months: months}
}

type suggestionResp struct {
	Name          string         `json:"name"`
	HasHistory    bool           `json:"has_history"`
	LastContact   *response.Date `json:"last_contact,omitempty"`
	CadenceMonths int            `json:"cadence_months,omitempty"`
	JitterDays    int            `json:"jitter_days"`
	SuggestedDate response.Date  `json:"suggested_date"`
}

type suggestResp struct {
	Suggestions []suggestionResp `json:"suggestions"`
	Skipped     int              `json:"skipped"`
}

func newSuggestionResp(s catchup.Suggestion) suggestionResp {
	resp := suggestionResp{
		Name:          s.Name,
		HasHistory:    s.HasHistory,
		CadenceMonths: s.CadenceMonths,
		JitterDays:    s.JitterDays,
		SuggestedDate: response.Date(s.SuggestedDate),
	}
	if s.HasHistory {
		last := response.Date(s.LastContact)
		resp.LastContact = &last
	}
	return resp
}

func (h *handler) newSuggestResp(out schedule.SuggestCatchUpsOutput) suggestResp {
	suggestions := make([]suggestionResp, len(out.Suggestions))
	for i, s := range out.Suggestions {
		suggestions[i] = newSuggestionResp(s)
	}
	return suggestResp{Suggestions: suggestions, Skipped: out.Skipped}
}
