package server

import (
	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	users, err := s.userService.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetUserProfile handles GET /api/users/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	profile, err := s.userService.GetProfile(c.Context(), c.Params("username"), requesterID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(profile)
}

// FollowUser handles POST /api/users/:username/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := requesterID(c)
	username := c.Params("username")

	if err := s.followService.Follow(c.Context(), userID, username); err != nil {
		return models.RespondError(c, err)
	}

	if s.notifier != nil {
		follower, err := s.userRepo.GetByID(c.Context(), userID)
		if err == nil {
			author, authorErr := s.userRepo.GetByUsername(c.Context(), username)
			if authorErr == nil {
				if notifyErr := s.notifier.NotifyNewFollower(c.Context(), author.ID, follower.Username); notifyErr != nil {
					middleware.Logger.WarnContext(c.UserContext(), "follower notification failed", "error", notifyErr)
				}
			}
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UnfollowUser handles DELETE /api/users/:username/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	if err := s.followService.Unfollow(c.Context(), requesterID(c), c.Params("username")); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowedAuthors handles GET /api/users/me/following
func (s *Server) GetFollowedAuthors(c *fiber.Ctx) error {
	authors, err := s.followService.FollowedAuthors(c.Context(), requesterID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"authors": authors})
}
