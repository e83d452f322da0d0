package server

import (
	"errors"

	"quill/internal/models"
	"quill/internal/service"

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

// feedWindow reads the page and size query parameters. Out-of-range
// values are not errors; the feed service clamps them onto real pages.
func feedWindow(c *fiber.Ctx) (page, size int) {
	return c.QueryInt("page", 1), c.QueryInt("size", 0)
}

// requesterID returns the authenticated user id, or zero for anonymous
// requests.
func requesterID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// renderFeedPage writes a feed page in the shape every feed route shares.
func renderFeedPage(c *fiber.Ctx, page *service.FeedPage) error {
	return c.JSON(page)
}
