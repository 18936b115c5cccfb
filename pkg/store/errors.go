package store

import (
	"errors"
	"fmt"
)

// Sentinel errors for the write paths. A rejected write leaves the
// collections and the backing files untouched.
var (
	ErrDuplicateAssignment = errors.New("volunteer already assigned to this event")
	ErrUnknownEvent        = errors.New("unknown event id")
	ErrUnknownVolunteer    = errors.New("unknown volunteer")
)

// ValidationError reports a rejected form field. It is recoverable: the
// caller re-prompts instead of aborting.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
