package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FlorianHaas/TenantDesk/internal/pkg/session"
)

// SessionKey is the fiber.Ctx locals key the authenticated session is stored
// under.
const SessionKey = "SESSION"

// RequireAdmin authenticates requests against the admin session domain.
func RequireAdmin(manager *session.AdminManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing session token"})
		}
		sess, err := manager.Current(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid or expired session"})
		}
		c.Locals(SessionKey, sess)
		return c.Next()
	}
}

// RequireCustomer authenticates requests against the customer session domain.
func RequireCustomer(manager *session.CustomerManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing session token"})
		}
		sess, err := manager.Current(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid or expired session"})
		}
		c.Locals(SessionKey, sess)
		return c.Next()
	}
}

// CurrentSession returns the session the auth middleware stored, or nil.
func CurrentSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(SessionKey).(*session.Session)
	return sess
}

func extractToken(c *fiber.Ctx) string {
	if token := strings.TrimSpace(c.Get("X-Session-Token")); token != "" {
		return token
	}
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[len("bearer "):])
	}
	return ""
}
