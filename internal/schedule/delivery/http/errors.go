package http

import (
	"errors"
	"net/http"

	"calboss/internal/schedule"
	"calboss/pkg/response"
)

var errValidation = []error{
	schedule.ErrEmptyName,
	schedule.ErrEmptyTitle,
	schedule.ErrEmptyQuery,
	schedule.ErrEmptyIDs,
	schedule.ErrInvalidDate,
	schedule.ErrInvalidTime,
	schedule.ErrMissingTime,
	schedule.ErrInvalidRepeat,
	schedule.ErrInvalidScope,
	schedule.ErrInvalidCadence,
}

// mapError translates use-case errors into HTTP errors.
func (h *handler) mapError(err error) error {
	for _, target := range errValidation {
		if errors.Is(err, target) {
			return response.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	switch {
	case errors.Is(err, schedule.ErrEventNotFound):
		return response.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, schedule.ErrStoreUnavailable):
		return response.ErrBadGateway
	default:
		return response.ErrInternalServerError
	}
}
