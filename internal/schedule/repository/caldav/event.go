package caldav

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"

	"calboss/internal/model"
	"calboss/internal/schedule/repository"
)

func (r *implRepository) ListEvents(ctx context.Context, opt repository.ListEventsOptions) ([]model.CalendarEvent, error) {
	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name:     ical.CompCalendar,
			AllProps: true,
			AllComps: true,
		},
		CompFilter: caldav.CompFilter{
			Name: ical.CompCalendar,
			Comps: []caldav.CompFilter{{
				Name:  ical.CompEvent,
				Start: opt.Window.Start,
				End:   opt.Window.End,
			}},
		},
	}

	objects, err := r.client.QueryCalendar(ctx, r.calendarPath, query)
	if err != nil {
		return nil, fmt.Errorf("query calendar: %w", err)
	}

	var events []model.CalendarEvent
	for _, obj := range objects {
		comp := firstEvent(obj.Data)
		if comp == nil {
			r.l.Warnf(ctx, "caldav.ListEvents: %s has no VEVENT", obj.Path)
			continue
		}
		ev := r.toModel(idFromPath(obj.Path), comp)
		if !matchesQuery(ev, opt.Query) {
			continue
		}
		if ev.Start.IsZero() {
			r.l.Warnf(ctx, "caldav.ListEvents: skipping %s with no usable DTSTART", obj.Path)
			continue
		}
		events = append(events, r.expand(ev, opt.Window.Start, opt.Window.End)...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Time.Before(events[j].Start.Time)
	})
	if opt.MaxResults > 0 && int64(len(events)) > opt.MaxResults {
		events = events[:opt.MaxResults]
	}
	return events, nil
}

func (r *implRepository) GetEvent(ctx context.Context, id string) (model.CalendarEvent, error) {
	_, comp, err := r.load(ctx, id)
	if err != nil {
		return model.CalendarEvent{}, err
	}
	return r.toModel(id, comp), nil
}

func (r *implRepository) InsertEvent(ctx context.Context, opt repository.InsertEventOptions) (model.CalendarEvent, error) {
	uid := r.newUID()
	cal, err := r.buildCalendar(uid, opt)
	if err != nil {
		return model.CalendarEvent{}, err
	}

	if _, err := r.client.PutCalendarObject(ctx, r.objectPath(uid), cal); err != nil {
		return model.CalendarEvent{}, fmt.Errorf("create event: %w", err)
	}
	return r.toModel(uid, firstEvent(cal)), nil
}

func (r *implRepository) UpdateEvent(ctx context.Context, opt repository.UpdateEventOptions) (model.CalendarEvent, error) {
	cal, comp, err := r.load(ctx, opt.ID)
	if err != nil {
		return model.CalendarEvent{}, err
	}

	if opt.Description == "" {
		delete(comp.Props, ical.PropDescription)
	} else {
		comp.Props.SetText(ical.PropDescription, opt.Description)
	}

	if _, err := r.client.PutCalendarObject(ctx, r.objectPath(opt.ID), cal); err != nil {
		return model.CalendarEvent{}, fmt.Errorf("update event: %w", err)
	}
	return r.toModel(opt.ID, comp), nil
}

func (r *implRepository) DeleteEvent(ctx context.Context, id string) error {
	if err := r.client.RemoveAll(ctx, r.objectPath(id)); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", repository.ErrNotFound, id)
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (r *implRepository) load(ctx context.Context, id string) (*ical.Calendar, *ical.Component, error) {
	obj, err := r.client.GetCalendarObject(ctx, r.objectPath(id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	comp := firstEvent(obj.Data)
	if comp == nil {
		return nil, nil, fmt.Errorf("%w: %s has no VEVENT", repository.ErrNotFound, id)
	}
	return obj.Data, comp, nil
}

// isNotFound matches go-webdav's HTTP error text; the error type is internal.
func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "404") || strings.Contains(msg, "410")
}
