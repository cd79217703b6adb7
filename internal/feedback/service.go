// Package feedback records term selections as popularity increments.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"autosuggest/internal/models"
	"autosuggest/internal/validation"
)

// Store is the write side of a term store.
type Store interface {
	// IncrementPopularity must add exactly one in a single atomic operation.
	IncrementPopularity(ctx context.Context, term string) error
}

// Outcome labels for a recorded selection.
const (
	OutcomeRecorded = "recorded"
	OutcomeUnknown  = "unknown"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Service is the popularity feedback service.
type Service struct {
	store    Store
	log      *slog.Logger
	observer func(outcome string)
}

// NewService creates a feedback service. observer, if non-nil, is called once
// per RecordSelection with the outcome label.
func NewService(store Store, log *slog.Logger, observer func(outcome string)) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, log: log, observer: observer}
}

// RecordSelection increments the popularity of term by one.
// Returns models.ErrInvalidTerm for an empty term without touching the store,
// and models.ErrStoreUnavailable when the store fails. Terms that are not in
// the store are free-text submissions and are accepted as a no-op.
func (s *Service) RecordSelection(ctx context.Context, term string) error {
	term = validation.NormalizeTerm(term)
	if term == "" {
		s.observe(OutcomeInvalid)
		return models.ErrInvalidTerm
	}

	err := s.store.IncrementPopularity(ctx, term)
	switch {
	case err == nil:
		s.observe(OutcomeRecorded)
		return nil
	case errors.Is(err, models.ErrTermNotFound):
		s.log.Debug("selection for unknown term ignored", "term", term)
		s.observe(OutcomeUnknown)
		return nil
	default:
		s.log.Error("failed to update popularity", "term", term, "error", err)
		s.observe(OutcomeError)
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
}

func (s *Service) observe(outcome string) {
	if s.observer != nil {
		s.observer(outcome)
	}
}
