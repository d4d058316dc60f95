// Package apperr defines the three error kinds the exercise API distinguishes:
// bad client input, a missing user, and store failures.
//
// Stores and the log query return these; the HTTP layer maps them to a
// status code with Status and never has to inspect error strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned (usually wrapped) when no user matches an identifier.
var ErrNotFound = errors.New("user not found")

// ClientInputError reports a malformed request value. Field names the
// offending input (for example "from", "limit", "_id").
type ClientInputError struct {
	Field   string
	Message string
}

func (e *ClientInputError) Error() string {
	return e.Message
}

// InfrastructureError wraps a store or transport failure. Op names the
// operation that failed; the wrapped error is for logs only.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// Input returns a ClientInputError for field with the given message.
func Input(field, message string) error {
	return &ClientInputError{Field: field, Message: message}
}

// InvalidIdentifier is returned when a user id is not a valid ObjectID.
func InvalidIdentifier() error {
	return &ClientInputError{Field: "_id", Message: "Invalid user id"}
}

// InvalidDate is returned when a date filter or field does not parse.
func InvalidDate(field string) error {
	return &ClientInputError{Field: field, Message: fmt.Sprintf("Invalid %q date", field)}
}

// InvalidLimit is returned when the limit filter is not a positive integer.
func InvalidLimit() error {
	return &ClientInputError{Field: "limit", Message: `Invalid "limit"`}
}

// NotFound wraps ErrNotFound with the identifier that was looked up.
func NotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Store wraps err as an InfrastructureError for op. A nil err stays nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &InfrastructureError{Op: op, Err: err}
}

// IsClientInput reports whether err is (or wraps) a ClientInputError.
func IsClientInput(err error) bool {
	var ce *ClientInputError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Status maps an error to the HTTP status the API answers with.
// Anything that is not client input or not-found is a 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsClientInput(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to show a client for err.
// Infrastructure failures get a fixed message.
func Message(err error) string {
	var ce *ClientInputError
	switch {
	case errors.As(err, &ce):
		return ce.Message
	case IsNotFound(err):
		return "User not found"
	default:
		return "Internal server error"
	}
}
