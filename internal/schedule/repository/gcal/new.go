// Package gcal stores schedule events in Google Calendar.
package gcal

import (
	"context"
	"time"

	"calboss/internal/schedule/repository"
	"calboss/pkg/gcalendar"
	"calboss/pkg/log"
)

// Client is the subset of *gcalendar.Client the repository needs.
type Client interface {
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
	GetEvent(ctx context.Context, calendarID, eventID string) (*gcalendar.Event, error)
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	UpdateDescription(ctx context.Context, calendarID, eventID, description string) (*gcalendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

type implRepository struct {
	l          log.Logger
	client     Client
	calendarID string
	loc        *time.Location
}

var _ repository.CalendarStore = (*implRepository)(nil)

// New creates a Google Calendar backed CalendarStore.
func New(l log.Logger, client Client, calendarID string, loc *time.Location) repository.CalendarStore {
	if loc == nil {
		loc = time.UTC
	}
	return &implRepository{
		l:          l,
		client:     client,
		calendarID: calendarID,
		loc:        loc,
	}
}
