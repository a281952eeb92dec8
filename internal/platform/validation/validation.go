// Package validation defines the field-level error type shared by the domain
// services. A validation failure is always raised before any store call so
// callers can map it to a 400 without wondering about partial writes.
package validation

import (
	"errors"
	"fmt"
)

// Error reports a rejected input field.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Required returns a validation error for a missing field.
func Required(field string) error {
	return &Error{Field: field, Reason: "is required"}
}

// Invalid returns a validation error with a custom reason.
func Invalid(field, reason string) error {
	return &Error{Field: field, Reason: reason}
}

// Is reports whether err is a validation error.
func Is(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}
