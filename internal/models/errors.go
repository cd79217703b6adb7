package models

import "errors"

// Error taxonomy shared by the ranking and feedback paths.
var (
	// ErrStoreUnavailable wraps any backing-store failure.
	ErrStoreUnavailable = errors.New("term store unavailable")

	// ErrInvalidTerm is returned when a selected term is empty after trimming.
	ErrInvalidTerm = errors.New("term is required")

	// ErrTermNotFound is returned by stores when no record matches a term.
	ErrTermNotFound = errors.New("term not found")
)
