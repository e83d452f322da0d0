package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGroups handles GET /api/groups
func (s *Server) GetGroups(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	groups, err := s.groupService.ListGroups(c.Context(), limit, offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// GetGroupBySlug handles GET /api/groups/:slug
func (s *Server) GetGroupBySlug(c *fiber.Ctx) error {
	group, err := s.groupService.GetGroup(c.Context(), c.Params("slug"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(group)
}

// CreateGroup handles POST /api/groups
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.CreateGroup(c.Context(), service.CreateGroupInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// DeleteGroup handles DELETE /api/groups/:slug
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	if err := s.groupService.DeleteGroup(c.Context(), c.Params("slug")); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
