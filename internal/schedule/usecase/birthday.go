package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"calboss/internal/agenda"
	"calboss/internal/model"
	"calboss/internal/schedule"
	"calboss/internal/schedule/repository"
	"calboss/pkg/datemath"
)

// AddBirthday inserts a yearly all-day event starting at the next
// occurrence of MM/DD.
func (uc *implUseCase) AddBirthday(ctx context.Context, input schedule.AddBirthdayInput) (schedule.AddEventOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return schedule.AddEventOutput{}, schedule.ErrEmptyName
	}

	month, day, err := parseMonthDay(input.Date)
	if err != nil {
		return schedule.AddEventOutput{}, err
	}

	first := nextOccurrence(uc.dateMath.StartOfDay(uc.now()), month, day)
	next := first.AddDate(0, 0, 1)

	ev, err := uc.store.InsertEvent(ctx, repository.InsertEventOptions{
		Title:      uc.cfg.Birthday.Title(name),
		Start:      model.DateOf(first.Year(), first.Month(), first.Day(), first.Location()),
		End:        model.DateOf(next.Year(), next.Month(), next.Day(), next.Location()),
		Recurrence: []string{repeatRules["yearly"]},
	})
	if err != nil {
		uc.l.Errorf(ctx, "schedule.usecase.AddBirthday InsertEvent: %v", err)
		return schedule.AddEventOutput{}, uc.storeErr(err)
	}
	return schedule.AddEventOutput{Event: ev}, nil
}

// RemoveBirthday deletes every birthday series for name found in the coming year.
func (uc *implUseCase) RemoveBirthday(ctx context.Context, name string) (schedule.BatchOutput, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return schedule.BatchOutput{}, schedule.ErrEmptyName
	}

	events, err := uc.list(ctx, uc.yearAhead(), uc.birthdayQuery())
	if err != nil {
		return schedule.BatchOutput{}, err
	}

	var targets []model.CalendarEvent
	for _, ev := range events {
		if got, ok := uc.cfg.Birthday.Name(ev.Title); ok && got == name {
			targets = append(targets, ev)
		}
	}
	if len(targets) == 0 {
		return schedule.BatchOutput{}, schedule.ErrEventNotFound
	}

	return uc.deleteEach(ctx, targets), nil
}

// ShowBirthdays buckets the birthdays in the scope's window by month.
func (uc *implUseCase) ShowBirthdays(ctx context.Context, scope schedule.BirthdayScope) (schedule.ShowBirthdaysOutput, error) {
	if scope == "" {
		scope = schedule.BirthdayScopeMonth
	}

	now := uc.now()
	var window datemath.Window
	switch scope {
	case schedule.BirthdayScopeAll:
		window = uc.yearAhead()
	case schedule.BirthdayScopeMonth:
		window = uc.dateMath.Month(now)
	case schedule.BirthdayScopeWeek:
		window = uc.dateMath.Days(now, 7)
	case schedule.BirthdayScopeToday:
		window = uc.dateMath.Days(now, 1)
	default:
		return schedule.ShowBirthdaysOutput{}, schedule.ErrInvalidScope
	}

	events, err := uc.list(ctx, window, uc.birthdayQuery())
	if err != nil {
		return schedule.ShowBirthdaysOutput{}, err
	}

	months := agenda.BucketByMonth(events, uc.cfg.Birthday, uc.dateMath.Location())
	count := 0
	for _, m := range months {
		count += len(m.Entries)
	}
	return schedule.ShowBirthdaysOutput{Scope: scope, Months: months, Count: count}, nil
}

func (uc *implUseCase) yearAhead() datemath.Window {
	start := uc.dateMath.StartOfDay(uc.now())
	return datemath.Window{Start: start, End: datemath.AddMonths(start, lookAheadMonths)}
}

// birthdayQuery narrows the server-side search; BucketByMonth re-checks the marker.
func (uc *implUseCase) birthdayQuery() string {
	if s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(uc.cfg.Birthday.Suffix), "'s")); s != "" {
		return s
	}
	return strings.TrimSpace(uc.cfg.Birthday.Prefix)
}

// parseMonthDay accepts "MM/DD" and "MM-DD".
func parseMonthDay(value string) (time.Month, int, error) {
	v := strings.ReplaceAll(strings.TrimSpace(value), "-", "/")
	t, err := time.Parse("1/2", v)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q, use MM/DD", schedule.ErrInvalidDate, value)
	}
	return t.Month(), t.Day(), nil
}

// nextOccurrence returns the first month/day on or after today. Feb 29
// moves to the next leap year.
func nextOccurrence(today time.Time, month time.Month, day int) time.Time {
	for year := today.Year(); ; year++ {
		if day > datemath.DaysIn(year, month) {
			continue
		}
		d := time.Date(year, month, day, 0, 0, 0, 0, today.Location())
		if !d.Before(today) {
			return d
		}
	}
}
