package schedule

import "errors"

// Domain-specific errors for the schedule package.
var (
	ErrEmptyName        = errors.New("name is empty")
	ErrEmptyTitle       = errors.New("title is empty")
	ErrEmptyQuery       = errors.New("search query is empty")
	ErrEmptyIDs         = errors.New("no event ids given")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTime      = errors.New("invalid time")
	ErrMissingTime      = errors.New("start and end time are required unless the event is all-day")
	ErrInvalidRepeat    = errors.New("repeat must be daily, weekly, monthly or yearly")
	ErrInvalidScope     = errors.New("scope must be all, month, week or today")
	ErrInvalidCadence   = errors.New("cadence months must be positive")
	ErrEventNotFound    = errors.New("event not found")
	ErrStoreUnavailable = errors.New("calendar store unavailable")
)
