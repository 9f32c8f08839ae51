package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/halcyonpress/halcyon/internal/auth"
	"github.com/halcyonpress/halcyon/internal/logger"
)

// SessionContextKey is where the verified session is stored on the request.
const SessionContextKey = "session"

// RequireSession gates every /api/admin route. It verifies the bearer token
// and stores the resulting session for handlers; unauthenticated callers get
// a 401. Role-level decisions happen later, in the permission checks.
func RequireSession(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token == authHeader {
			return unauthorized(c, "missing session token")
		}

		sess, err := auth.ParseToken(secret, token)
		if err != nil {
			return unauthorized(c, "invalid session token")
		}

		c.Locals(SessionContextKey, sess)
		return c.Next()
	}
}

// SessionFrom returns the verified session, or nil outside the admin gate.
func SessionFrom(c *fiber.Ctx) *auth.Session {
	sess, _ := c.Locals(SessionContextKey).(*auth.Session)
	return sess
}

func unauthorized(c *fiber.Ctx, reason string) error {
	logger.Get().Warn().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("ip", c.IP()).
		Str("reason", reason).
		Msg("admin access denied")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Authentication required",
	})
}
