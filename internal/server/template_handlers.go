package server

import (
	"postpilot/internal/models"
	"postpilot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListTemplates handles GET /api/templates
func (s *Server) ListTemplates(c *fiber.Ctx) error {
	templates, err := s.templateService.ListTemplates(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(templates)
}

// GetTemplate handles GET /api/templates/:id
func (s *Server) GetTemplate(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	template, err := s.templateService.GetTemplate(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(template)
}

// CreateTemplate handles POST /api/templates with a multipart body of a name
// plus the template image.
func (s *Server) CreateTemplate(c *fiber.Ctx) error {
	saved, ok, err := s.saveUploadedImage(c)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	input := service.CreateTemplateInput{Name: c.FormValue("name")}
	if ok {
		input.ImagePath = saved.Path
		input.ImageURL = saved.URL
	}

	template, err := s.templateService.CreateTemplate(c.UserContext(), input)
	if err != nil {
		if ok {
			s.reconciler.Delete(saved.Path)
		}
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

// UpdateTemplate handles PATCH /api/templates/:id
func (s *Server) UpdateTemplate(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	saved, ok, err := s.saveUploadedImage(c)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	input := service.UpdateTemplateInput{Name: c.FormValue("name")}
	if ok {
		input.ImagePath = saved.Path
		input.ImageURL = saved.URL
	}

	template, err := s.templateService.UpdateTemplate(c.UserContext(), id, input)
	if err != nil {
		if ok {
			s.reconciler.Delete(saved.Path)
		}
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(template)
}

// DeleteTemplate handles DELETE /api/templates/:id
func (s *Server) DeleteTemplate(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.templateService.DeleteTemplate(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
