package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/aircastio/aircast/internal/config"
	"github.com/aircastio/aircast/internal/events"
	"github.com/aircastio/aircast/internal/handlers"
	"github.com/aircastio/aircast/internal/logging"
	"github.com/aircastio/aircast/internal/middleware"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, publisher events.Publisher, cfg config.Config, version string) *handlers.Handler {
	h := handlers.New(logger, cfg, publisher, version)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	v1.Post("/compare", h.Compare)
	v1.Get("/models", h.ListModels)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, publisher events.Publisher, cfg config.Config, version string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Aircast API",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, publisher, cfg, version)

	return app
}
