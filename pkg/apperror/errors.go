package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
)

// AppError carries a user-facing message on top of a sentinel error.
type AppError struct {
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) *AppError {
	return &AppError{Message: message, Err: ErrValidation}
}

func Conflict(message string) *AppError {
	return &AppError{Message: message, Err: ErrConflict}
}

func NotFound(message string) *AppError {
	return &AppError{Message: message, Err: ErrNotFound}
}

// MapErrorToStatus maps sentinel errors to HTTP status codes.
// Validation and conflict failures are both client errors surfaced as 400,
// matching the public API contract.
func MapErrorToStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
