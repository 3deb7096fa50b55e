package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"pizzeria/internal/models"
	"pizzeria/internal/services"
)

// Locals keys set by the auth middleware.
const (
	UserKey  = "user"
	TokenKey = "token"
)

// AuthRequired is a Fiber middleware that rejects requests without a valid,
// logged-in bearer token and stores the authenticated user in the context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.Authenticate(tokenString)
		if err != nil {
			logrus.Debugf("authentication failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(UserKey, user)
		c.Locals(TokenKey, tokenString)
		return c.Next()
	}
}

// OptionalAuth stores the authenticated user in the context when a valid
// token is presented and passes the request through either way. Used by
// endpoints whose response is richer for admins.
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, ok := bearerToken(c); ok {
			if user, err := authService.Authenticate(tokenString); err == nil {
				c.Locals(UserKey, user)
				c.Locals(TokenKey, tokenString)
			}
		}
		return c.Next()
	}
}

// AdminRequired rejects authenticated users that do not hold the admin role.
// Must run after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(UserKey).(*models.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		if !user.HasRole(models.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
