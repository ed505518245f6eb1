// Package apperr defines the service-layer error taxonomy. Services return
// these, controllers map them onto HTTP responses exactly once via
// response.FromError.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a machine-readable application error with an HTTP status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// New builds an Error with an arbitrary status.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Validation is a 422 for out-of-range or malformed input.
func Validation(message string) *Error {
	return New(http.StatusUnprocessableEntity, message)
}

// Unauthorized is a 401 for missing, invalid or expired credentials.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden is a 403 for wrong role or non-owner access. Ownership failures
// use this too, never NotFound.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// NotFound is a 404 for ids that do not resolve to an active record.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict is a 409 for duplicate email or duplicate active review.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// From extracts an *Error from err, or nil when err is not one.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
