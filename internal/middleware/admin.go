package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdminAuthMiddleware guards administrative endpoints with a shared secret.
// Plan upgrades are an operator action, outside the account token flow.
func AdminAuthMiddleware(adminToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if adminToken == "" {
			return fiber.NewError(fiber.StatusForbidden, "admin access disabled")
		}

		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "missing admin token")
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(adminToken)) != 1 {
			return fiber.NewError(fiber.StatusForbidden, "invalid admin token")
		}

		return c.Next()
	}
}
