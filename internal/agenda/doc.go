// Package agenda turns flat lists of calendar events into ordered,
// human-labelled views: day buckets for the today/week schedule and month
// buckets for birthdays. Everything here is pure; callers supply "now" and
// the display zone.
package agenda
