package middleware

import (
	"context"
	"strconv"
	"strings"

	"quill/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired returns a middleware that enforces a valid bearer token and
// stores the authenticated user id in c.Locals("userID").
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := userIDFromRequest(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		setRequestUser(c, userID)
		return c.Next()
	}
}

// OptionalAuth resolves the requester identity when a valid token is present
// and continues anonymously otherwise. Feed and detail reads use this: they
// are public but render differently for signed-in readers.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, err := userIDFromRequest(c, cfg); err == nil {
			setRequestUser(c, userID)
		}
		return c.Next()
	}
}

// setRequestUser records the authenticated user in Fiber locals and syncs
// it into the request context for the context-aware logger.
func setRequestUser(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
}

func userIDFromRequest(c *fiber.Ctx, cfg *config.Config) (uint, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Authorization header required")
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	// User id travels in the "sub" claim (RFC 7519 subject)
	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid token subject")
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil || userID == 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid token subject")
	}

	return uint(userID), nil
}
