package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetHomeFeed handles GET /api/feed
func (s *Server) GetHomeFeed(c *fiber.Ctx) error {
	page, size := feedWindow(c)
	feed, err := s.feedService.GetFeed(c.Context(), service.FeedQuery{
		Kind:        service.FeedAll,
		RequesterID: requesterID(c),
		Page:        page,
		Size:        size,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return renderFeedPage(c, feed)
}

// GetGroupFeed handles GET /api/feed/groups/:slug
func (s *Server) GetGroupFeed(c *fiber.Ctx) error {
	page, size := feedWindow(c)
	feed, err := s.feedService.GetFeed(c.Context(), service.FeedQuery{
		Kind:        service.FeedByGroup,
		Slug:        c.Params("slug"),
		RequesterID: requesterID(c),
		Page:        page,
		Size:        size,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return renderFeedPage(c, feed)
}

// GetAuthorFeed handles GET /api/feed/users/:username
func (s *Server) GetAuthorFeed(c *fiber.Ctx) error {
	page, size := feedWindow(c)
	feed, err := s.feedService.GetFeed(c.Context(), service.FeedQuery{
		Kind:        service.FeedByAuthor,
		Username:    c.Params("username"),
		RequesterID: requesterID(c),
		Page:        page,
		Size:        size,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return renderFeedPage(c, feed)
}

// GetFollowingFeed handles GET /api/feed/following
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	page, size := feedWindow(c)
	feed, err := s.feedService.GetFeed(c.Context(), service.FeedQuery{
		Kind:        service.FeedFollowing,
		RequesterID: requesterID(c),
		Page:        page,
		Size:        size,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return renderFeedPage(c, feed)
}
