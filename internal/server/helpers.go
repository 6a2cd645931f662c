package server

import (
	"strconv"

	"devbook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// parseIDParam parses a positive integer route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("invalid " + name)
	}
	return uint(id), nil
}

// fail writes the standardized error response with the mapped status code.
func fail(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.HTTPStatus(err), err)
}
