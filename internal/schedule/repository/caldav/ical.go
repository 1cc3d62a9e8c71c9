package caldav

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"calboss/internal/model"
	"calboss/internal/schedule/repository"
)

func newUID() string {
	return uuid.NewString()
}

func (r *implRepository) objectPath(id string) string {
	return r.calendarPath + id + ".ics"
}

func idFromPath(p string) string {
	return strings.TrimSuffix(path.Base(p), ".ics")
}

// firstEvent returns the master VEVENT of a calendar object, skipping
// RECURRENCE-ID overrides.
func firstEvent(cal *ical.Calendar) *ical.Component {
	if cal == nil {
		return nil
	}
	var fallback *ical.Component
	for _, child := range cal.Children {
		if child.Name != ical.CompEvent {
			continue
		}
		if child.Props.Get(ical.PropRecurrenceID) == nil {
			return child
		}
		if fallback == nil {
			fallback = child
		}
	}
	return fallback
}

func (r *implRepository) eventTime(comp *ical.Component, name string) model.EventTime {
	prop := comp.Props.Get(name)
	if prop == nil {
		return model.EventTime{}
	}
	t, err := prop.DateTime(r.loc)
	if err != nil {
		return model.EventTime{}
	}
	if prop.Params.Get(ical.ParamValue) == string(ical.ValueDate) {
		return model.DateOf(t.Year(), t.Month(), t.Day(), r.loc)
	}
	return model.InstantOf(t.In(r.loc))
}

func text(comp *ical.Component, name string) string {
	v, err := comp.Props.Text(name)
	if err != nil {
		if prop := comp.Props.Get(name); prop != nil {
			return prop.Value
		}
		return ""
	}
	return v
}

// toModel maps a VEVENT. The id is the object's file name so it can be
// addressed again without a lookup.
func (r *implRepository) toModel(id string, comp *ical.Component) model.CalendarEvent {
	ev := model.CalendarEvent{
		ID:          id,
		Title:       text(comp, ical.PropSummary),
		Description: text(comp, ical.PropDescription),
		Location:    text(comp, ical.PropLocation),
		Start:       r.eventTime(comp, ical.PropDateTimeStart),
		End:         r.eventTime(comp, ical.PropDateTimeEnd),
	}
	if prop := comp.Props.Get(ical.PropRecurrenceRule); prop != nil {
		ev.Recurrence = []string{"RRULE:" + prop.Value}
	}
	if ev.End.IsZero() && ev.Start.DateOnly {
		ev.End = model.EventTime{Time: ev.Start.Time.AddDate(0, 0, 1), DateOnly: true}
	}
	return ev
}

// expand turns a master event into the instances overlapping window.
// Instances share the series id; the object is the series.
func (r *implRepository) expand(ev model.CalendarEvent, start, end time.Time) []model.CalendarEvent {
	if ev.Start.IsZero() {
		return []model.CalendarEvent{ev}
	}

	duration := time.Duration(0)
	if !ev.End.IsZero() {
		duration = ev.End.Time.Sub(ev.Start.Time)
	}

	if len(ev.Recurrence) == 0 {
		if overlaps(ev.Start.Time, ev.Start.Time.Add(duration), start, end) {
			return []model.CalendarEvent{ev}
		}
		return nil
	}

	rule, err := rrule.StrToRRule(strings.TrimPrefix(ev.Recurrence[0], "RRULE:"))
	if err != nil {
		// Unreadable rule: keep the master so callers still see the event.
		return []model.CalendarEvent{ev}
	}
	rule.DTStart(ev.Start.Time)

	var out []model.CalendarEvent
	for _, occ := range rule.Between(start.Add(-duration), end, true) {
		if !overlaps(occ, occ.Add(duration), start, end) {
			continue
		}
		inst := ev
		inst.SeriesID = ev.ID
		inst.Start = model.EventTime{Time: occ, DateOnly: ev.Start.DateOnly}
		inst.End = model.EventTime{Time: occ.Add(duration), DateOnly: ev.Start.DateOnly}
		out = append(out, inst)
	}
	return out
}

// overlaps treats a zero-length event as occupying its start instant.
func overlaps(evStart, evEnd, winStart, winEnd time.Time) bool {
	if !evEnd.After(evStart) {
		return !evStart.Before(winStart) && evStart.Before(winEnd)
	}
	return evEnd.After(winStart) && evStart.Before(winEnd)
}

func matchesQuery(ev model.CalendarEvent, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []string{ev.Title, ev.Description, ev.Location} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (r *implRepository) buildCalendar(uid string, opt repository.InsertEventOptions) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, uid)
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, r.now().UTC())
	vevent.Props.SetText(ical.PropSummary, opt.Title)
	if opt.Description != "" {
		vevent.Props.SetText(ical.PropDescription, opt.Description)
	}
	if opt.Location != "" {
		vevent.Props.SetText(ical.PropLocation, opt.Location)
	}

	if opt.Start.DateOnly {
		vevent.Props.SetDate(ical.PropDateTimeStart, opt.Start.Time)
		end := opt.End
		if end.IsZero() {
			end = model.EventTime{Time: opt.Start.Time.AddDate(0, 0, 1), DateOnly: true}
		}
		vevent.Props.SetDate(ical.PropDateTimeEnd, end.Time)
	} else {
		vevent.Props.SetDateTime(ical.PropDateTimeStart, opt.Start.Time.UTC())
		vevent.Props.SetDateTime(ical.PropDateTimeEnd, opt.End.Time.UTC())
	}

	for _, line := range opt.Recurrence {
		value := strings.TrimPrefix(line, "RRULE:")
		if _, err := rrule.StrToROption(value); err != nil {
			return nil, fmt.Errorf("invalid recurrence %q: %w", line, err)
		}
		prop := ical.NewProp(ical.PropRecurrenceRule)
		prop.Value = value
		vevent.Props.Set(prop)
	}

	for _, minutes := range opt.ReminderMinutes {
		alarm := ical.NewComponent(ical.CompAlarm)
		alarm.Props.SetText(ical.PropAction, "DISPLAY")
		alarm.Props.SetText(ical.PropDescription, opt.Title)
		trigger := ical.NewProp(ical.PropTrigger)
		trigger.Value = fmt.Sprintf("-PT%dM", minutes)
		alarm.Props.Set(trigger)
		vevent.Children = append(vevent.Children, alarm)
	}

	cal.Children = append(cal.Children, vevent.Component)
	return cal, nil
}
