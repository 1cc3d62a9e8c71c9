package digest

import (
	"context"
	"fmt"
	"strings"

	"calboss/internal/catchup"
	"calboss/internal/model"
	"calboss/internal/schedule"
)

// Compose renders today's schedule, today's birthdays and the catch-ups
// suggested within CatchUpDays. Only a failing schedule read is fatal; the
// other sections are dropped with a warning.
func (d *Digest) Compose(ctx context.Context) (string, error) {
	today, err := d.uc.Today(ctx)
	if err != nil {
		return "", fmt.Errorf("digest: today: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "☀️ Good morning! %s\n", today.Date.Format("Monday, Jan 02"))

	b.WriteString("\n📅 Today\n")
	if len(today.Events) == 0 {
		b.WriteString("No events.\n")
	}
	for _, ev := range today.Events {
		fmt.Fprintf(&b, "• %s %s\n", d.clock(ev), ev.Title)
	}

	birthdays, err := d.uc.ShowBirthdays(ctx, schedule.BirthdayScopeToday)
	if err != nil {
		d.l.Warnf(ctx, "digest.Compose ShowBirthdays: %v", err)
	} else if birthdays.Count > 0 {
		b.WriteString("\n🎂 Birthdays\n")
		for _, m := range birthdays.Months {
			for _, e := range m.Entries {
				fmt.Fprintf(&b, "• %s\n", e.Name)
			}
		}
	}

	suggestions, err := d.uc.SuggestCatchUps(ctx, schedule.SuggestCatchUpsInput{})
	if err != nil {
		d.l.Warnf(ctx, "digest.Compose SuggestCatchUps: %v", err)
	} else if due := d.dueSoon(today, suggestions.Suggestions); len(due) > 0 {
		b.WriteString("\n🤝 Catch-ups due\n")
		for _, s := range due {
			fmt.Fprintf(&b, "• %s (%s)\n", s.Name, s.SuggestedDate.In(d.cfg.Location).Format("Mon Jan 02"))
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func (d *Digest) clock(ev model.CalendarEvent) string {
	if ev.AllDay() {
		return "All day:"
	}
	return ev.Start.In(d.cfg.Location).Format("15:04")
}

// dueSoon keeps suggestions dated in [today, today+CatchUpDays).
func (d *Digest) dueSoon(today schedule.TodayOutput, suggestions []catchup.Suggestion) []catchup.Suggestion {
	end := today.Date.AddDate(0, 0, d.cfg.CatchUpDays)
	var out []catchup.Suggestion
	for _, s := range suggestions {
		if !s.SuggestedDate.Before(today.Date) && s.SuggestedDate.Before(end) {
			out = append(out, s)
		}
	}
	return out
}
