package apperrors

import (
	"errors"
	"net/http"
)

// Kinds of failure a service call can surface. Handlers map these to HTTP
// status codes; anything else is a 500 with a generic body.
var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
)

// Error carries a user-facing message together with its failure kind.
type Error struct {
	kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.kind
}

func Validation(message string) *Error {
	return &Error{kind: ErrValidation, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{kind: ErrForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{kind: ErrNotFound, Message: message}
}

// Status resolves the HTTP status code for a service error.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
