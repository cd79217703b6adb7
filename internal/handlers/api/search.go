package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"autosuggest/internal/metrics"
	"autosuggest/internal/models"
	"autosuggest/internal/validation"
)

// Searcher ranks suggestions for a term. Implemented by ranking.Engine.
type Searcher interface {
	Search(ctx context.Context, term string, limit int) ([]models.Suggestion, string, error)
}

// SearchHandler serves the suggestion fetch endpoint.
type SearchHandler struct {
	engine Searcher
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(engine Searcher) *SearchHandler {
	return &SearchHandler{engine: engine}
}

// Search returns ranked suggestions for ?q= capped by ?limit=.
// Store failures produce an empty list with a 500 status, never a crash.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	limit := validation.ParseLimit(c.Query("limit"))

	start := time.Now()
	suggestions, query, err := h.engine.Search(c.Context(), c.Query("q"), limit)
	metrics.ObserveSearch(query, len(suggestions), time.Since(start), err)

	if err != nil {
		slog.Error("database error", "query", query, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.SearchErrorResponse{
			Suggestions: []models.Suggestion{},
			Error:       "Failed to fetch suggestions",
		})
	}

	return c.JSON(models.SearchResponse{
		Suggestions: suggestions,
		Query:       query,
	})
}
