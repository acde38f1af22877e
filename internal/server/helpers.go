package server

import (
	"errors"

	"postpilot/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// requireOwner checks that the authenticated user matches the addressed
// resource owner. On mismatch it writes a 403 response and returns
// errResponseWritten.
func (s *Server) requireOwner(c *fiber.Ctx, ownerID uint) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID != ownerID {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You do not have access to this resource"))
		return errResponseWritten
	}
	return nil
}
