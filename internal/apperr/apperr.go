package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure taxonomy. Services wrap these with
// fmt.Errorf("...: %w", Err...) so controllers can map them with errors.Is.
var (
	ErrNotFound            = errors.New("requested resource not found")
	ErrValidation          = errors.New("validation failed")
	ErrTemporalViolation   = errors.New("test timing violation")
	ErrDuplicateSubmission = errors.New("test already submitted")
	ErrForbidden           = errors.New("access denied")
	ErrDataIntegrity       = errors.New("referenced data missing or inactive")
	ErrUpstream            = errors.New("internal server error")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrTemporalViolation),
		errors.Is(err, ErrDuplicateSubmission),
		errors.Is(err, ErrDataIntegrity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the message safe to show to the caller. Unexpected
// errors collapse to a generic message; the detail stays in the server log.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if HTTPStatusFromError(err) == http.StatusInternalServerError {
		return ErrUpstream.Error()
	}
	return err.Error()
}

// Errorf creates a new error with formatting, useful for wrapping sentinels.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
