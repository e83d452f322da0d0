package server

import (
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Text      string `json:"text"`
	ImageURL  string `json:"image_url"`
	GroupSlug string `json:"group"`
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:    requesterID(c),
		Text:      req.Text,
		ImageURL:  req.ImageURL,
		GroupSlug: req.GroupSlug,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	if s.notifier != nil {
		// Delivery is best effort; the post itself is committed.
		if err := s.notifier.NotifyPostPublished(c.Context(), post.ID, post.User.Username); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "post publish notification failed", "error", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:    requesterID(c),
		PostID:    id,
		Text:      req.Text,
		ImageURL:  req.ImageURL,
		GroupSlug: req.GroupSlug,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: requesterID(c),
		PostID: id,
	}); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
