package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// AuthHandler handles HTTP requests for admin authentication.
type AuthHandler struct {
	authService *services.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleLogin checks admin credentials and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	token, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		h.logger.Info("admin login rejected", "email", req.Email, "err", err)
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}
