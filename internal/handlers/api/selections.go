package api

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"autosuggest/internal/models"
)

// SelectionRecorder records a chosen term. Implemented by feedback.Service.
type SelectionRecorder interface {
	RecordSelection(ctx context.Context, term string) error
}

// SelectionHandler serves the popularity feedback endpoint.
type SelectionHandler struct {
	recorder SelectionRecorder
}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler(recorder SelectionRecorder) *SelectionHandler {
	return &SelectionHandler{recorder: recorder}
}

type selectionRequest struct {
	Term string `json:"term"`
}

// Record increments the popularity of the submitted term.
// The term is read from a JSON body or from the "term" form field.
func (h *SelectionHandler) Record(c fiber.Ctx) error {
	term, err := termFromBody(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.recorder.RecordSelection(c.Context(), term); err != nil {
		if errors.Is(err, models.ErrInvalidTerm) {
			return jsonError(c, fiber.StatusBadRequest, "Term is required")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update popularity")
	}

	return c.JSON(models.SelectionResponse{Success: true})
}

// MethodNotAllowed rejects every method other than POST on the feedback route.
func (h *SelectionHandler) MethodNotAllowed(c fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, fiber.MethodPost)
	return jsonError(c, fiber.StatusMethodNotAllowed, "Method not allowed")
}

func termFromBody(c fiber.Ctx) (string, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		var req selectionRequest
		if err := c.Bind().JSON(&req); err != nil {
			return "", err
		}
		return req.Term, nil
	}
	return c.FormValue("term"), nil
}
