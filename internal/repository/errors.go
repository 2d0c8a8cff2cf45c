package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when an insert would violate the
	// unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrVersionConflict is returned when a compare-and-swap update lost
	// against a concurrent write. Callers re-fetch and retry.
	ErrVersionConflict = errors.New("record version conflict")
)
