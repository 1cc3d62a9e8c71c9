package response

import "net/http"

// HTTPError carries the status code a handler wants to respond with.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

var (
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest, "bad request")
	ErrNotFound            = NewHTTPError(http.StatusNotFound, "not found")
	ErrBadGateway          = NewHTTPError(http.StatusBadGateway, "calendar backend unavailable")
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, DefaultErrorMessage)
)
