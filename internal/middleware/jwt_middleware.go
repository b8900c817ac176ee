package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperror"
	"storefront/internal/services"
)

// AdminRequired is a Fiber middleware that rejects requests without a valid
// admin bearer token.
func AdminRequired(authService *services.AuthService, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			logger.Debug("JWT validation failed", "err", err)
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals("user_id", claims["user_id"])
		c.Locals("email", claims["email"])
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  apperror.CodeUnauthorized,
	})
}
