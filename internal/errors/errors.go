package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for the handler boundary.
type Kind string

const (
	KindValidation      Kind = "VALIDATION_ERROR"
	KindConflict        Kind = "CONFLICT"
	KindNotFound        Kind = "NOT_FOUND"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindInternal        Kind = "INTERNAL_ERROR"
)

// Error is a domain error carrying a public message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind and message, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation reports malformed input or a missing referenced entity.
func Validation(message string) *Error { return newError(KindValidation, message) }

// Conflict reports a uniqueness or referential-deletion violation.
func Conflict(message string) *Error { return newError(KindConflict, message) }

// NotFound reports an absent primary resource.
func NotFound(message string) *Error { return newError(KindNotFound, message) }

// Unauthenticated reports a missing, invalid or unknown credential.
func Unauthenticated(message string) *Error { return newError(KindUnauthenticated, message) }

// Forbidden reports insufficient privilege.
func Forbidden(message string) *Error { return newError(KindForbidden, message) }

// Internal wraps an unexpected failure. The cause is kept for logs only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf returns the kind of err, or KindInternal when err is not a domain error.
// A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognised becomes a
// generic 500 so no internal detail reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	var e *Error
	if !errors.As(err, &e) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", string(KindInternal))
	}

	switch e.Kind {
	case KindValidation, KindConflict:
		return NewHTTPError(http.StatusBadRequest, e.Message, string(e.Kind))
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, e.Message, string(e.Kind))
	case KindUnauthenticated:
		return NewHTTPError(http.StatusUnauthorized, e.Message, string(e.Kind))
	case KindForbidden:
		return NewHTTPError(http.StatusForbidden, e.Message, string(e.Kind))
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", string(KindInternal))
	}
}
