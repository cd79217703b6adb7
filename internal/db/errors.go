package db

import (
	"errors"

	"autosuggest/internal/models"
)

// Domain-level database error sentinels.
var (
	// ErrTermNotFound aliases the shared sentinel so callers can match either.
	ErrTermNotFound = models.ErrTermNotFound

	// ErrDuplicateTerm is returned when a term already exists case-insensitively.
	ErrDuplicateTerm = errors.New("term already exists")
)
