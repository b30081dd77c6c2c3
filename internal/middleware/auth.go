package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/robparra/chatbot/internal/auth"
	"github.com/robparra/chatbot/internal/config"
	"github.com/robparra/chatbot/internal/models"
)

const principalContextKey = "currentPrincipal"

// AuthMiddleware validates bearer tokens and loads the authenticated
// principal into context. A missing or malformed header is 401; a present
// but invalid or expired token is 403.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		principal, err := auth.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "invalid token")
		}

		c.Locals(principalContextKey, principal)
		return c.Next()
	}
}

// RequirePlans gates a route behind an explicit allowed-plan set. It must
// run after AuthMiddleware.
func RequirePlans(allowed ...models.Plan) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := GetPrincipal(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		if err := auth.Authorize(principal, allowed...); err != nil {
			return fiber.NewError(fiber.StatusForbidden, "plan does not include this feature")
		}
		return c.Next()
	}
}

// GetPrincipal extracts the authenticated principal from context.
func GetPrincipal(c *fiber.Ctx) (auth.Principal, bool) {
	value := c.Locals(principalContextKey)
	if value == nil {
		return auth.Principal{}, false
	}

	if principal, ok := value.(auth.Principal); ok {
		return principal, true
	}

	return auth.Principal{}, false
}
