package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormatISO is the layout accepted for absolute dates.
const DateFormatISO = "2006-01-02"

var inDurationRe = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Parser resolves dates and windows in a single configured zone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "America/New_York"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the configured zone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Parse converts an absolute (YYYY-MM-DD) or relative date string to the
// start of that day in the parser's zone. baseTime is the reference point.
func (p *Parser) Parse(value string, baseTime time.Time) (time.Time, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	if t, err := time.ParseInLocation(DateFormatISO, value, p.location); err == nil {
		return t, nil
	}

	switch value {
	case "today":
		return p.StartOfDay(baseTime), nil
	case "tomorrow":
		return p.StartOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.StartOfDay(baseTime.AddDate(0, 0, -1)), nil
	}

	// Handle "in X days/weeks/months"
	if strings.HasPrefix(value, "in ") {
		return p.parseInDuration(value, baseTime)
	}

	// Handle "next <weekday>"
	if strings.HasPrefix(value, "next ") {
		return p.parseNextWeekday(value, baseTime)
	}

	return time.Time{}, fmt.Errorf("unrecognised date: %q", value)
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(value string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(value)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid duration format: %q", value)
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid amount in %q: %w", value, err)
	}
	start := p.StartOfDay(baseTime)

	switch unit := matches[2]; {
	case strings.HasPrefix(unit, "day"):
		return start.AddDate(0, 0, amount), nil
	case strings.HasPrefix(unit, "week"):
		return start.AddDate(0, 0, amount*7), nil
	default:
		return AddMonths(start, amount), nil
	}
}

// parseNextWeekday handles patterns like "next monday", "next friday".
func (p *Parser) parseNextWeekday(value string, baseTime time.Time) (time.Time, error) {
	dayName := strings.TrimPrefix(value, "next ")
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown weekday: %q", dayName)
	}

	start := p.StartOfDay(baseTime)
	daysUntil := int(targetWeekday - start.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}

	return start.AddDate(0, 0, daysUntil), nil
}

// StartOfDay returns midnight at the start of t's calendar day in the parser's zone.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// Upcoming returns [now, start of day(now) + days). Days are counted as
// calendar days in the zone so DST transitions do not shift the boundary.
func (p *Parser) Upcoming(now time.Time, days int) Window {
	return Window{
		Start: now.In(p.location),
		End:   p.StartOfDay(now).AddDate(0, 0, days),
	}
}

// Days returns [start of day(now), start of day(now) + days).
func (p *Parser) Days(now time.Time, days int) Window {
	start := p.StartOfDay(now)
	return Window{Start: start, End: start.AddDate(0, 0, days)}
}

// Month returns the calendar month containing now.
func (p *Parser) Month(now time.Time) Window {
	n := now.In(p.location)
	start := time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, p.location)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// SameDate reports whether a and b fall on the same calendar day in the parser's zone.
func (p *Parser) SameDate(a, b time.Time) bool {
	a, b = a.In(p.location), b.In(p.location)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// AddMonths adds n calendar months to t, clamping the day to the last valid
// day of the target month (Jan 31 + 1 month = Feb 28/29). time.AddDate would
// normalise to early March instead.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, n, 0)
	if last := DaysIn(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
