package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/tavola/internal/apierror"
)

// ErrorHandler renders every error as the standard response envelope.
// Validation errors carry their per-field messages; anything unexpected
// becomes a plain 500 so internal detail never reaches clients.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validation *apierror.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   validation.Error(),
			"fields":  validation.Fields,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"error":   fiberErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "internal server error",
	})
}
