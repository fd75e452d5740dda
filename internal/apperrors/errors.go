// Package apperrors defines the error taxonomy shared between services
// and handlers: validation (400), conflict (409), not-found (404).
// Anything that is none of these propagates as an internal error.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups that matched nothing, including exhausted
// promotion codes.
var ErrNotFound = errors.New("not found")

// ErrPaymentDeclined is returned when the payment gateway reports any
// status other than succeeded. It is the only expected failure of the
// checkout flow and must never be retried automatically.
var ErrPaymentDeclined = errors.New("payment declined")

// ConflictError covers duplicate email, invalid credentials and other
// state conflicts surfaced to the caller as 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflict creates a ConflictError with a formatted message.
func NewConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError is a malformed-input error tagged with the offending
// field where one applies.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidation creates a field-tagged ValidationError.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
