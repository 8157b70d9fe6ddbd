package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced entity id does not resolve in the store.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the permission table denied the action for the
	// acting principal's role. The store is never touched in that case.
	ErrForbidden = errors.New("forbidden")
	// ErrUnknownAction means the permission table was asked about an action
	// outside its fixed set. The table fails closed rather than defaulting
	// to allow.
	ErrUnknownAction = errors.New("unknown action")
)

// ValidationError reports a missing or malformed required field. It is
// raised before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for the given field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError wraps a failure of the underlying document store (network,
// quota, permission on the store side). The cause stays reachable through
// errors.Unwrap.
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
