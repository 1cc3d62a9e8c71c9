package repository

import (
	"context"

	"calboss/internal/model"
)

// CalendarStore is the remote calendar the schedule domain reads from and
// writes to. ListEvents returns instances ordered by start ascending, with
// recurring series expanded.
type CalendarStore interface {
	ListEvents(ctx context.Context, opt ListEventsOptions) ([]model.CalendarEvent, error)
	GetEvent(ctx context.Context, id string) (model.CalendarEvent, error)
	InsertEvent(ctx context.Context, opt InsertEventOptions) (model.CalendarEvent, error)
	UpdateEvent(ctx context.Context, opt UpdateEventOptions) (model.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}
