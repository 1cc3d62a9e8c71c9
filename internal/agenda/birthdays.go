package agenda

import (
	"sort"
	"strings"
	"time"

	"calboss/internal/model"
)

// BirthdayMarker is the title convention that tags an event as a birthday:
// Prefix + name + Suffix, e.g. "🎂 Lisa's Birthday".
type BirthdayMarker struct {
	Prefix string
	Suffix string
}

// Title renders the event title for name.
func (m BirthdayMarker) Title(name string) string {
	return m.Prefix + strings.TrimSpace(name) + m.Suffix
}

// Matches reports whether title carries the birthday prefix.
func (m BirthdayMarker) Matches(title string) bool {
	return m.Prefix != "" && strings.HasPrefix(title, m.Prefix)
}

// Name recovers the bare person name from a birthday title.
func (m BirthdayMarker) Name(title string) (string, bool) {
	if !m.Matches(title) {
		return "", false
	}
	name := strings.TrimPrefix(title, m.Prefix)
	name = strings.TrimSpace(strings.TrimSuffix(name, m.Suffix))
	if name == "" {
		return "", false
	}
	return name, true
}

// BirthdayEntry is one birthday inside a month bucket.
type BirthdayEntry struct {
	Name    string
	Day     int
	Date    time.Time // the instance date that was fetched, local midnight
	EventID string
}

// MonthBucket holds the birthdays of one calendar month, ordered by day.
type MonthBucket struct {
	Month   time.Month
	Entries []BirthdayEntry
}

// Name returns the English month name, e.g. "July".
func (b MonthBucket) Name() string {
	return b.Month.String()
}

// BucketByMonth groups birthday events by calendar month, ignoring the year.
// Buckets come out January to December, only for months with entries, and
// entries inside a bucket are sorted by day of month. Events whose title does
// not carry the marker, or whose start is missing, are skipped.
func BucketByMonth(events []model.CalendarEvent, marker BirthdayMarker, loc *time.Location) []MonthBucket {
	var byMonth [13][]BirthdayEntry

	for _, ev := range events {
		name, ok := marker.Name(ev.Title)
		if !ok || ev.Start.IsZero() {
			continue
		}
		date := dateOf(ev.Start.In(loc), loc)
		byMonth[date.Month()] = append(byMonth[date.Month()], BirthdayEntry{
			Name:    name,
			Day:     date.Day(),
			Date:    date,
			EventID: ev.ID,
		})
	}

	buckets := make([]MonthBucket, 0)
	for m := time.January; m <= time.December; m++ {
		entries := byMonth[m]
		if len(entries) == 0 {
			continue
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Day < entries[j].Day
		})
		buckets = append(buckets, MonthBucket{Month: m, Entries: entries})
	}

	return buckets
}
