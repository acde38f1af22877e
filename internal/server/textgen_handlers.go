package server

import (
	"postpilot/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GeneratePostText handles POST /api/generate
func (s *Server) GeneratePostText(c *fiber.Ctx) error {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	text, err := s.textgenClient.Generate(c.UserContext(), req.Prompt)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"text": text})
}
