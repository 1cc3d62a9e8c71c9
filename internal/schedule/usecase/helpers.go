package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"calboss/internal/model"
	"calboss/internal/schedule"
	"calboss/internal/schedule/repository"
	"calboss/pkg/datemath"
)

var (
	clock24Re  = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	clock12Re  = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
	reminderRe = regexp.MustCompile(`^(\d+)\s*([mh])$`)
)

var repeatRules = map[string]string{
	"daily":   "RRULE:FREQ=DAILY",
	"weekly":  "RRULE:FREQ=WEEKLY",
	"monthly": "RRULE:FREQ=MONTHLY",
	"yearly":  "RRULE:FREQ=YEARLY",
}

// lookAhead is how far "upcoming" reaches for search and catch-up listing.
const lookAheadMonths = 12

func (uc *implUseCase) now() time.Time {
	return uc.cfg.Clock().In(uc.dateMath.Location())
}

// list fetches events and translates store failures.
func (uc *implUseCase) list(ctx context.Context, window datemath.Window, query string) ([]model.CalendarEvent, error) {
	events, err := uc.store.ListEvents(ctx, repository.ListEventsOptions{
		Window:     window,
		Query:      query,
		MaxResults: uc.cfg.MaxResults,
	})
	if err != nil {
		uc.l.Errorf(ctx, "schedule.usecase.list: %v", err)
		return nil, uc.storeErr(err)
	}
	return events, nil
}

func (uc *implUseCase) storeErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return schedule.ErrEventNotFound
	}
	return fmt.Errorf("%w: %v", schedule.ErrStoreUnavailable, err)
}

// parseClock accepts "14:00", "9:05", "2PM" and "2:30pm".
func parseClock(value string) (hour, minute int, err error) {
	v := strings.ToLower(strings.TrimSpace(value))

	if m := clock24Re.FindStringSubmatch(v); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return 0, 0, schedule.ErrInvalidTime
		}
		return hour, minute, nil
	}

	if m := clock12Re.FindStringSubmatch(v); m != nil {
		hour, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || minute > 59 {
			return 0, 0, schedule.ErrInvalidTime
		}
		hour %= 12
		if m[3] == "pm" {
			hour += 12
		}
		return hour, minute, nil
	}

	return 0, 0, schedule.ErrInvalidTime
}

// parseReminder turns "15m" or "1h" into minutes.
func parseReminder(value string) (int64, bool) {
	m := reminderRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(value)))
	if m == nil {
		return 0, false
	}
	amount, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	if m[2] == "h" {
		amount *= 60
	}
	return amount, true
}

func atClock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// joinLines appends non-empty lines.
func joinLines(lines ...string) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// deleteEach removes every id, deduplicated, recording per-item results.
func (uc *implUseCase) deleteEach(ctx context.Context, targets []model.CalendarEvent) schedule.BatchOutput {
	var out schedule.BatchOutput
	seen := make(map[string]bool, len(targets))

	for _, ev := range targets {
		id := ev.SeriesKey()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		res := schedule.ItemResult{ID: id, Title: ev.Title, OK: true}
		if err := uc.store.DeleteEvent(ctx, id); err != nil {
			uc.l.Warnf(ctx, "schedule.usecase.deleteEach %s: %v", id, err)
			res.OK = false
			res.Error = uc.storeErr(err).Error()
		}
		out.Results = append(out.Results, res)
	}
	return out
}
