package usecase

import (
	"context"
	"strings"

	"calboss/internal/agenda"
	"calboss/internal/schedule"
	"calboss/pkg/datemath"
)

// Today lists [now, end of today) and keeps only events starting today.
func (uc *implUseCase) Today(ctx context.Context) (schedule.TodayOutput, error) {
	now := uc.now()
	loc := uc.dateMath.Location()

	events, err := uc.list(ctx, uc.dateMath.Upcoming(now, 1), "")
	if err != nil {
		return schedule.TodayOutput{}, err
	}

	return schedule.TodayOutput{
		Date:   uc.dateMath.StartOfDay(now),
		Events: agenda.OnDate(now, events, loc),
	}, nil
}

// Week groups [now, start of today + week days) by day label.
func (uc *implUseCase) Week(ctx context.Context) (schedule.WeekOutput, error) {
	now := uc.now()
	window := uc.dateMath.Upcoming(now, uc.cfg.WeekDays)

	events, err := uc.list(ctx, window, "")
	if err != nil {
		return schedule.WeekOutput{}, err
	}

	return schedule.WeekOutput{
		Window: window,
		Days:   agenda.GroupByDay(now, events, uc.dateMath.Location()),
	}, nil
}

// Search looks a year ahead, or across the history horizon as well when All is set.
func (uc *implUseCase) Search(ctx context.Context, input schedule.SearchInput) (schedule.SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return schedule.SearchOutput{}, schedule.ErrEmptyQuery
	}

	now := uc.now()
	window := datemath.Window{Start: now, End: datemath.AddMonths(now, lookAheadMonths)}
	if input.All {
		window.Start = now.AddDate(-uc.cfg.HistoryYears, 0, 0)
	}

	events, err := uc.list(ctx, window, query)
	if err != nil {
		return schedule.SearchOutput{}, err
	}

	return schedule.SearchOutput{
		Days:  agenda.GroupByDay(now, events, uc.dateMath.Location()),
		Count: len(events),
	}, nil
}
