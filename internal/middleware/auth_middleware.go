package middleware

import (
	"context"
	"errors"
	"strings"

	"shopapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const principalKey = "principal"

// Authenticator resolves a raw bearer token to the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*services.Principal, error)
}

// AuthRequired rejects requests without a valid, unrevoked bearer token and
// stores the resolved principal for the handlers.
func AuthRequired(auth Authenticator, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return unauthenticated(c)
		}

		principal, err := auth.Authenticate(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				log.Debug("bearer token rejected", zap.Error(err))
				return unauthenticated(c)
			}
			return err
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// PrincipalFrom returns the principal stored by AuthRequired, or nil.
func PrincipalFrom(c *fiber.Ctx) *services.Principal {
	principal, _ := c.Locals(principalKey).(*services.Principal)
	return principal
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthenticated.",
	})
}
