// Package ranking turns a search term into an ordered, capped suggestion list.
package ranking

import (
	"context"
	"errors"
	"fmt"

	"autosuggest/internal/models"
	"autosuggest/internal/validation"
)

// Store is the read side of a term store.
type Store interface {
	// SearchTerms returns up to limit terms containing query, already ordered.
	SearchTerms(ctx context.Context, query string, limit int) ([]models.Term, error)
	// RandomTerms returns up to limit terms in random order.
	RandomTerms(ctx context.Context, limit int) ([]models.Term, error)
}

// Engine is the ranking query engine.
type Engine struct {
	store Store
}

// NewEngine creates an engine over store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Search returns up to limit suggestions for term along with the normalized
// query they were computed for. An empty normalized term yields a random
// sample. Store failures are reported as models.ErrStoreUnavailable.
func (e *Engine) Search(ctx context.Context, term string, limit int) ([]models.Suggestion, string, error) {
	query := validation.NormalizeQuery(term)
	limit = validation.CoerceLimit(limit)

	var (
		terms []models.Term
		err   error
	)
	if query == "" {
		terms, err = e.store.RandomTerms(ctx, limit)
	} else {
		terms, err = e.store.SearchTerms(ctx, query, limit)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, query, err
		}
		return nil, query, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}

	if len(terms) > limit {
		terms = terms[:limit]
	}
	return models.Suggestions(terms), query, nil
}
