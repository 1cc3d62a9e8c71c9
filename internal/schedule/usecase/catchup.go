package usecase

import (
	"context"
	"strings"
	"time"

	"calboss/internal/agenda"
	"calboss/internal/catchup"
	"calboss/internal/model"
	"calboss/internal/schedule"
	"calboss/pkg/datemath"
)

// SuggestCatchUps mines the history horizon and predicts a date per person.
func (uc *implUseCase) SuggestCatchUps(ctx context.Context, input schedule.SuggestCatchUpsInput) (schedule.SuggestCatchUpsOutput, error) {
	names := make([]string, 0, len(input.Names))
	for _, n := range input.Names {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	now := uc.now()
	history := datemath.Window{Start: now.AddDate(-uc.cfg.HistoryYears, 0, 0), End: now}

	events, err := uc.list(ctx, history, uc.cfg.CatchUp.Prefix)
	if err != nil {
		return schedule.SuggestCatchUpsOutput{}, err
	}

	records := uc.tracker.Track(events)
	for _, id := range records.Skipped {
		uc.l.Warnf(ctx, "schedule.usecase.SuggestCatchUps: skipping catch-up %s with no start", id)
	}

	return schedule.SuggestCatchUpsOutput{
		Suggestions: uc.suggester.Suggest(now, names, records),
		Skipped:     len(records.Skipped),
	}, nil
}

// AddCatchUp schedules a marked event; a cadence is stored as a
// "Frequency: N months" line in the description.
func (uc *implUseCase) AddCatchUp(ctx context.Context, input schedule.AddCatchUpInput) (schedule.AddEventOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return schedule.AddEventOutput{}, schedule.ErrEmptyName
	}
	if input.CadenceMonths < 0 {
		return schedule.AddEventOutput{}, schedule.ErrInvalidCadence
	}

	hint := ""
	if input.CadenceMonths > 0 {
		hint = catchup.FormatCadenceHint(input.CadenceMonths)
	}

	return uc.AddEvent(ctx, schedule.AddEventInput{
		Title:       uc.cfg.CatchUp.Title(name),
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		AllDay:      strings.TrimSpace(input.StartTime) == "",
		Description: joinLines(input.Note, hint),
		Reminder:    input.Reminder,
	})
}

// ListCatchUps groups the coming year's catch-ups by day.
func (uc *implUseCase) ListCatchUps(ctx context.Context) (schedule.ListCatchUpsOutput, error) {
	now := uc.now()
	events, err := uc.upcomingCatchUps(ctx, now, "")
	if err != nil {
		return schedule.ListCatchUpsOutput{}, err
	}
	return schedule.ListCatchUpsOutput{
		Days:  agenda.GroupByDay(now, events, uc.dateMath.Location()),
		Count: len(events),
	}, nil
}

// ClearCatchUps deletes every upcoming catch-up with name.
func (uc *implUseCase) ClearCatchUps(ctx context.Context, name string) (schedule.BatchOutput, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return schedule.BatchOutput{}, schedule.ErrEmptyName
	}

	events, err := uc.upcomingCatchUps(ctx, uc.now(), name)
	if err != nil {
		return schedule.BatchOutput{}, err
	}
	if len(events) == 0 {
		return schedule.BatchOutput{}, schedule.ErrEventNotFound
	}

	out := uc.deleteEach(ctx, events)
	uc.l.Infof(ctx, "schedule.usecase.ClearCatchUps %q: %d removed, %d failed", name, len(out.Results)-out.Failed(), out.Failed())
	return out, nil
}

// upcomingCatchUps returns marked events in [now, now+12 months), limited to
// one person when name is set.
func (uc *implUseCase) upcomingCatchUps(ctx context.Context, now time.Time, name string) ([]model.CalendarEvent, error) {
	window := datemath.Window{Start: now, End: datemath.AddMonths(now, lookAheadMonths)}
	query := uc.cfg.CatchUp.Prefix
	if name != "" {
		query = uc.cfg.CatchUp.Title(name)
	}

	events, err := uc.list(ctx, window, query)
	if err != nil {
		return nil, err
	}

	out := make([]model.CalendarEvent, 0, len(events))
	for _, ev := range events {
		got, ok := uc.cfg.CatchUp.Name(ev.Title)
		if !ok || (name != "" && got != name) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}
