package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"autosuggest/internal/config"
	"autosuggest/internal/handlers/api"
	"autosuggest/internal/metrics"
	"autosuggest/internal/models"
	"autosuggest/internal/validation"
)

// IndexHandler renders the search page.
type IndexHandler struct {
	engine api.Searcher
	cfg    *config.Config
}

// NewIndexHandler creates a new index handler.
func NewIndexHandler(engine api.Searcher, cfg *config.Config) *IndexHandler {
	return &IndexHandler{engine: engine, cfg: cfg}
}

// Index renders the home page with an initial random sample of suggestions.
// A store failure renders the page with no suggestions.
func (h *IndexHandler) Index(c fiber.Ctx) error {
	start := time.Now()
	suggestions, _, err := h.engine.Search(c.Context(), "", validation.DefaultLimit)
	metrics.ObserveSearch("", len(suggestions), time.Since(start), err)
	if err != nil {
		slog.Error("failed to load initial suggestions", "error", err)
		suggestions = []models.Suggestion{}
	}

	return c.Render("index", MergeBranding(fiber.Map{
		"Suggestions":  suggestions,
		"ImageBaseURL": h.cfg.ImageBaseURL,
	}, h.cfg))
}
