package seatsync

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID     = "invalid"     // caller-input error
	ENOTFOUND    = "not_found"   // entity does not exist
	EINTERNAL    = "internal"    // unexpected internal failure
	ETIMEOUT     = "timeout"     // fetch or call deadline exceeded
	ENETWORK     = "network"     // transport-level fetch failure
	EBLOCKED     = "blocked"     // retry budget exhausted while challenged
	EUNAVAILABLE = "unavailable" // fetch strategy cannot initialize
)

// Error represents an application error with a machine-readable code.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("seatsync error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns a new Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors return EINTERNAL; nil returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return a generic message; nil returns the empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred."
}

// Retryable reports whether err represents a transient fetch failure
// that a scraper may retry within its attempt budget. Initialization
// failures (EUNAVAILABLE) are deliberately not retryable: they trigger
// the process-wide strategy fallback instead.
func Retryable(err error) bool {
	switch ErrorCode(err) {
	case ETIMEOUT, ENETWORK:
		return true
	}
	return false
}
