package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by the middleware.
const (
	LocalUserID  = "userId"
	LocalIsAdmin = "isAdmin"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success it stores the subject under LocalUserID and the admin flag under
// LocalIsAdmin.
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		// "Bearer <token>" or a bare token
		tokenStr := authHeader
		if scheme, rest, ok := strings.Cut(authHeader, " "); ok && strings.EqualFold(scheme, "Bearer") {
			tokenStr = strings.TrimSpace(rest)
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "empty token"})
		}
		claims, err := Parse(tokenStr, secret, expectedIssuer)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
		}
		c.Locals(LocalUserID, claims.Subject)
		c.Locals(LocalIsAdmin, claims.IsAdmin)
		return c.Next()
	}
}

// Actor reads the authenticated user from the request context.
func Actor(c *fiber.Ctx) (uuid.UUID, bool, error) {
	sub, _ := c.Locals(LocalUserID).(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false, fiber.ErrUnauthorized
	}
	isAdmin, _ := c.Locals(LocalIsAdmin).(bool)
	return id, isAdmin, nil
}

// RequireAdmin rejects non-admin actors. It must run after NewAuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, _ := c.Locals(LocalIsAdmin).(bool); !isAdmin {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
		}
		return c.Next()
	}
}
