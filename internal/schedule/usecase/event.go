package usecase

import (
	"context"
	"fmt"
	"strings"

	"calboss/internal/model"
	"calboss/internal/schedule"
	"calboss/internal/schedule/repository"
)

// AddEvent validates the user's input and inserts the event. An unreadable
// reminder is reported as a warning, not an error.
func (uc *implUseCase) AddEvent(ctx context.Context, input schedule.AddEventInput) (schedule.AddEventOutput, error) {
	opt, warnings, err := uc.buildInsert(ctx, input)
	if err != nil {
		return schedule.AddEventOutput{}, err
	}

	ev, err := uc.store.InsertEvent(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "schedule.usecase.AddEvent InsertEvent: %v", err)
		return schedule.AddEventOutput{}, uc.storeErr(err)
	}

	uc.l.Infof(ctx, "schedule.usecase.AddEvent: created %s %q", ev.ID, ev.Title)
	return schedule.AddEventOutput{Event: ev, Warnings: warnings}, nil
}

func (uc *implUseCase) buildInsert(ctx context.Context, input schedule.AddEventInput) (repository.InsertEventOptions, []string, error) {
	var warnings []string

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return repository.InsertEventOptions{}, nil, schedule.ErrEmptyTitle
	}

	day, err := uc.dateMath.Parse(input.Date, uc.now())
	if err != nil {
		return repository.InsertEventOptions{}, nil, fmt.Errorf("%w: %v", schedule.ErrInvalidDate, err)
	}

	opt := repository.InsertEventOptions{Title: title}

	if input.AllDay {
		opt.Start = model.DateOf(day.Year(), day.Month(), day.Day(), day.Location())
		next := day.AddDate(0, 0, 1)
		opt.End = model.DateOf(next.Year(), next.Month(), next.Day(), next.Location())
	} else {
		if strings.TrimSpace(input.StartTime) == "" || strings.TrimSpace(input.EndTime) == "" {
			return repository.InsertEventOptions{}, nil, schedule.ErrMissingTime
		}
		sh, sm, err := parseClock(input.StartTime)
		if err != nil {
			return repository.InsertEventOptions{}, nil, fmt.Errorf("%w: start %q", err, input.StartTime)
		}
		eh, em, err := parseClock(input.EndTime)
		if err != nil {
			return repository.InsertEventOptions{}, nil, fmt.Errorf("%w: end %q", err, input.EndTime)
		}
		start, end := atClock(day, sh, sm), atClock(day, eh, em)
		if !end.After(start) {
			return repository.InsertEventOptions{}, nil, fmt.Errorf("%w: end must be after start", schedule.ErrInvalidTime)
		}
		opt.Start = model.InstantOf(start)
		opt.End = model.InstantOf(end)
	}

	location := strings.TrimSpace(input.Location)
	opt.Location = location
	if location != "" {
		location = "Location: " + location
	}
	opt.Description = joinLines(input.Description, location)

	if r := strings.TrimSpace(input.Reminder); r != "" {
		minutes, ok := parseReminder(r)
		if ok {
			opt.ReminderMinutes = []int64{minutes}
		} else {
			uc.l.Warnf(ctx, "schedule.usecase.AddEvent: ignoring reminder %q", r)
			warnings = append(warnings, fmt.Sprintf("invalid reminder format %q, use 15m or 1h", r))
		}
	}

	if rep := strings.ToLower(strings.TrimSpace(input.Repeat)); rep != "" {
		rule, ok := repeatRules[rep]
		if !ok {
			return repository.InsertEventOptions{}, nil, schedule.ErrInvalidRepeat
		}
		opt.Recurrence = []string{rule}
	}

	return opt, warnings, nil
}

// RemoveEvents deletes each id, or the series an instance id belongs to, and
// reports every outcome.
func (uc *implUseCase) RemoveEvents(ctx context.Context, ids []string) (schedule.BatchOutput, error) {
	targets := make([]model.CalendarEvent, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			targets = append(targets, uc.resolveSeries(ctx, id))
		}
	}
	if len(targets) == 0 {
		return schedule.BatchOutput{}, schedule.ErrEmptyIDs
	}

	out := uc.deleteEach(ctx, targets)
	uc.l.Infof(ctx, "schedule.usecase.RemoveEvents: %d removed, %d failed", len(out.Results)-out.Failed(), out.Failed())
	return out, nil
}

// resolveSeries looks id up so an expanded instance deletes its whole
// series. A failed lookup falls back to the raw id and lets DeleteEvent
// report the outcome.
func (uc *implUseCase) resolveSeries(ctx context.Context, id string) model.CalendarEvent {
	ev, err := uc.store.GetEvent(ctx, id)
	if err != nil {
		uc.l.Debugf(ctx, "schedule.usecase.RemoveEvents GetEvent %s: %v", id, err)
		return model.CalendarEvent{ID: id}
	}
	if ev.ID == "" {
		ev.ID = id
	}
	return ev
}

// AddNote replaces the event's description with the note.
func (uc *implUseCase) AddNote(ctx context.Context, input schedule.AddNoteInput) (schedule.AddEventOutput, error) {
	id := strings.TrimSpace(input.EventID)
	if id == "" {
		return schedule.AddEventOutput{}, schedule.ErrEmptyIDs
	}

	if _, err := uc.store.GetEvent(ctx, id); err != nil {
		uc.l.Warnf(ctx, "schedule.usecase.AddNote GetEvent %s: %v", id, err)
		return schedule.AddEventOutput{}, uc.storeErr(err)
	}

	ev, err := uc.store.UpdateEvent(ctx, repository.UpdateEventOptions{ID: id, Description: input.Note})
	if err != nil {
		uc.l.Errorf(ctx, "schedule.usecase.AddNote UpdateEvent %s: %v", id, err)
		return schedule.AddEventOutput{}, uc.storeErr(err)
	}
	return schedule.AddEventOutput{Event: ev}, nil
}
