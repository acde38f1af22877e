package server

import (
	"postpilot/internal/models"
	"postpilot/internal/service"
	"postpilot/internal/uploads"

	"github.com/gofiber/fiber/v2"
)

// GetSchedule handles GET /api/schedules/:userId
func (s *Server) GetSchedule(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	if err := s.requireOwner(c, userID); err != nil {
		return nil
	}

	schedule, err := s.scheduleService.GetSchedule(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(schedule)
}

// GetPost handles GET /api/schedules/:userId/posts/:postId
func (s *Server) GetPost(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	if err := s.requireOwner(c, userID); err != nil {
		return nil
	}

	post, err := s.scheduleService.GetPost(c.UserContext(), userID, c.Params("postId"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/schedules/:userId/posts. The body is
// multipart: post fields plus the image file.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	if err := s.requireOwner(c, userID); err != nil {
		return nil
	}

	saved, ok, err := s.saveUploadedImage(c)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	input := service.CreatePostInput{
		Platform: c.FormValue("platform"),
		PostText: c.FormValue("postText"),
		PostDate: c.FormValue("postDate"),
		PostTime: c.FormValue("postTime"),
	}
	if ok {
		input.ImagePath = saved.Path
		input.ImageURL = saved.URL
	}

	post, err := s.scheduleService.CreatePost(c.UserContext(), userID, input)
	if err != nil {
		// The file was written before the mutation was rejected; it is
		// referenced by nothing, so remove it.
		if ok {
			s.reconciler.Delete(saved.Path)
		}
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PATCH /api/schedules/:userId/posts/:postId. Omitted
// fields keep their current value; a new image replaces and reconciles the
// old one. The response carries the whole updated posts collection.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	if err := s.requireOwner(c, userID); err != nil {
		return nil
	}

	saved, ok, err := s.saveUploadedImage(c)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	upd := models.PostUpdate{
		Platform: c.FormValue("platform"),
		PostText: c.FormValue("postText"),
		PostDate: c.FormValue("postDate"),
		PostTime: c.FormValue("postTime"),
	}
	if ok {
		upd.ImagePath = saved.Path
		upd.ImageURL = saved.URL
	}

	posts, err := s.scheduleService.UpdatePost(c.UserContext(), userID, c.Params("postId"), upd)
	if err != nil {
		if ok {
			s.reconciler.Delete(saved.Path)
		}
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(posts)
}

// DeletePost handles DELETE /api/schedules/:userId/posts/:postId
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	if err := s.requireOwner(c, userID); err != nil {
		return nil
	}

	if err := s.scheduleService.DeletePost(c.UserContext(), userID, c.Params("postId")); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// saveUploadedImage stores the "image" multipart file if one was sent.
// ok reports whether a file was present.
func (s *Server) saveUploadedImage(c *fiber.Ctx) (saved uploads.Saved, ok bool, err error) {
	file, ferr := c.FormFile("image")
	if ferr != nil {
		return uploads.Saved{}, false, nil
	}
	saved, err = s.uploads.Save(file)
	if err != nil {
		return uploads.Saved{}, false, err
	}
	return saved, true, nil
}
