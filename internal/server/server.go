// Package server assembles the Fiber application.
package server

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	DB     *gorm.DB
	Logger *slog.Logger
	// Publisher receives catalog events; nil disables them.
	Publisher    services.EventPublisher
	AuthRequired bool
	JWTSecret    string
	TokenTTL     time.Duration
	// RequestLog enables the per-request access log.
	RequestLog bool
}

// New wires repositories, services and handlers into a Fiber app.
func New(deps Deps) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	productRepo := repositories.NewGORMProductRepository(deps.DB)
	reviewRepo := repositories.NewGORMReviewRepository(deps.DB)
	userRepo := repositories.NewGORMUserRepository(deps.DB)

	productService := services.NewProductService(productRepo, deps.Publisher, log)
	reviewService := services.NewReviewService(reviewRepo, productRepo, deps.Publisher, log)
	authService := services.NewAuthService(userRepo, deps.JWTSecret, deps.TokenTTL)

	app := fiber.New(fiber.Config{
		AppName:               "storefront",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	if deps.RequestLog {
		app.Use(logger.New())
	}
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		status, dbStatus := "healthy", "connected"
		code := fiber.StatusOK
		if err := database.Ping(deps.DB); err != nil {
			log.Warn("health check failed", "err", err)
			status, dbStatus = "unhealthy", "unreachable"
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
		})
	})

	var guard fiber.Handler
	if deps.AuthRequired {
		guard = middleware.AdminRequired(authService, log)
	}

	api := app.Group("/api")
	handlers.NewAuthHandler(authService, log).RegisterRoutes(api)
	handlers.NewProductHandler(productService, log).RegisterRoutes(api, guard)
	handlers.NewReviewHandler(reviewService, log).RegisterRoutes(api, guard)

	return app
}
