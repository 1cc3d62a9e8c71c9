package gcal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"calboss/internal/model"
	"calboss/internal/schedule/repository"
	"calboss/pkg/datemath"
	"calboss/pkg/gcalendar"
)

func (r *implRepository) ListEvents(ctx context.Context, opt repository.ListEventsOptions) ([]model.CalendarEvent, error) {
	items, err := r.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: r.calendarID,
		TimeMin:    opt.Window.Start,
		TimeMax:    opt.Window.End,
		Query:      opt.Query,
		MaxResults: opt.MaxResults,
	})
	if err != nil {
		return nil, r.mapErr(err)
	}

	events := make([]model.CalendarEvent, 0, len(items))
	for _, item := range items {
		ev := r.toModel(item)
		if ev.Start.IsZero() {
			r.l.Warnf(ctx, "gcal.ListEvents: skipping event %s with no usable start", item.ID)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (r *implRepository) GetEvent(ctx context.Context, id string) (model.CalendarEvent, error) {
	item, err := r.client.GetEvent(ctx, r.calendarID, id)
	if err != nil {
		return model.CalendarEvent{}, r.mapErr(err)
	}
	return r.toModel(*item), nil
}

func (r *implRepository) InsertEvent(ctx context.Context, opt repository.InsertEventOptions) (model.CalendarEvent, error) {
	req := gcalendar.CreateEventRequest{
		CalendarID:      r.calendarID,
		Summary:         opt.Title,
		Description:     opt.Description,
		Location:        opt.Location,
		Timezone:        r.loc.String(),
		Recurrence:      opt.Recurrence,
		ReminderMinutes: opt.ReminderMinutes,
	}
	if opt.Start.DateOnly {
		req.AllDay = true
		req.StartDate = opt.Start.Time.Format(datemath.DateFormatISO)
		end := opt.End
		if end.IsZero() {
			end = model.EventTime{Time: opt.Start.Time.AddDate(0, 0, 1), DateOnly: true}
		}
		req.EndDate = end.Time.Format(datemath.DateFormatISO)
	} else {
		req.StartTime = opt.Start.Time.In(r.loc)
		req.EndTime = opt.End.Time.In(r.loc)
	}

	created, err := r.client.CreateEvent(ctx, req)
	if err != nil {
		return model.CalendarEvent{}, r.mapErr(err)
	}
	return r.toModel(*created), nil
}

func (r *implRepository) UpdateEvent(ctx context.Context, opt repository.UpdateEventOptions) (model.CalendarEvent, error) {
	updated, err := r.client.UpdateDescription(ctx, r.calendarID, opt.ID, opt.Description)
	if err != nil {
		return model.CalendarEvent{}, r.mapErr(err)
	}
	return r.toModel(*updated), nil
}

func (r *implRepository) DeleteEvent(ctx context.Context, id string) error {
	if err := r.client.DeleteEvent(ctx, r.calendarID, id); err != nil {
		return r.mapErr(err)
	}
	return nil
}

func (r *implRepository) mapErr(err error) error {
	if errors.Is(err, gcalendar.ErrNotFound) {
		return fmt.Errorf("%w: %v", repository.ErrNotFound, err)
	}
	return err
}

func (r *implRepository) toModel(e gcalendar.Event) model.CalendarEvent {
	return model.CalendarEvent{
		ID:          e.ID,
		Title:       e.Summary,
		Description: e.Description,
		Location:    e.Location,
		Start:       r.toEventTime(e.StartDate, e.StartTime),
		End:         r.toEventTime(e.EndDate, e.EndTime),
		Recurrence:  e.Recurrence,
		HTMLLink:    e.HtmlLink,
		SeriesID:    e.RecurringEventID,
	}
}

// toEventTime returns a zero marker when neither form parses.
func (r *implRepository) toEventTime(date string, instant time.Time) model.EventTime {
	if date != "" {
		d, err := time.ParseInLocation(datemath.DateFormatISO, date, r.loc)
		if err != nil {
			return model.EventTime{}
		}
		return model.DateOf(d.Year(), d.Month(), d.Day(), r.loc)
	}
	if instant.IsZero() {
		return model.EventTime{}
	}
	return model.InstantOf(instant.In(r.loc))
}
