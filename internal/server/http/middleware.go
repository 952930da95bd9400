package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/igwenababa1/scbvault/internal/server/auth"
)

// userIDKey is the fiber.Ctx locals key holding the authenticated record id.
const userIDKey = "auth_user_id"

// Middleware validates bearer tokens on protected routes.
type Middleware struct {
	secretKey []byte
}

func NewMiddleware(secretKey []byte) *Middleware {
	return &Middleware{secretKey: secretKey}
}

// RequireUser enforces a valid Bearer token and stores the caller's record
// id in the request locals.
func (m *Middleware) RequireUser(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if header == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
	}

	uid, err := auth.GetUserIDFromToken(parts[1], m.secretKey)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	c.Locals(userIDKey, uid)
	return c.Next()
}
