package domain

import (
	"errors"
	"fmt"
)

// The mutation layer classifies failures into a small taxonomy so the
// HTTP layer can map each one to a status code without inspecting
// messages.

// ValidationError reports per-field form errors.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

// ConflictError reports a precondition on live state that did not hold,
// e.g. assigning into a bed that is no longer available.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// StateError reports an operation that does not apply to the entity's
// current state, e.g. unassigning a tenant with no bed.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

// NotFoundError reports a missing row.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s not found", e.Collection, e.ID)
}

// PersistenceError wraps a store failure with the operation that hit it.
type PersistenceError struct {
	Op         string
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation extracts a ValidationError from the chain.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsState(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
