package api

import (
	"github.com/gofiber/fiber/v3"

	"autosuggest/internal/models"
)

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}
