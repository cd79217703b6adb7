package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"autosuggest/internal/handlers"
	"autosuggest/internal/handlers/api"
)

// Deps holds the components routes are bound to.
type Deps struct {
	Engine    api.Searcher
	Selection api.SelectionRecorder
	Pinger    handlers.Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	indexHandler := handlers.NewIndexHandler(deps.Engine, s.Cfg)
	searchHandler := api.NewSearchHandler(deps.Engine)
	selectionHandler := api.NewSelectionHandler(deps.Selection)
	probeHandler := handlers.NewProbeHandler(deps.Pinger)

	// Frontend
	s.App.Get("/", indexHandler.Index)

	// Suggestion API. Both GET paths serve the same ranking query.
	s.App.Get("/search", searchHandler.Search)
	s.App.Get("/api/autocomplete", searchHandler.Search)
	s.App.Post("/api/autocomplete", selectionHandler.Record)
	s.App.All("/api/autocomplete", selectionHandler.MethodNotAllowed)

	// Operations
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
