// Package handlers contains the HTTP handlers of the comparison API.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aircastio/aircast/internal/config"
	"github.com/aircastio/aircast/internal/events"
	"github.com/aircastio/aircast/internal/logging"
	"github.com/aircastio/aircast/internal/models"
	"github.com/aircastio/aircast/internal/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger            *logging.Logger
	cfg               config.Config
	comparisonService *services.ComparisonService
	version           string
}

// New creates a new handler instance
func New(logger *logging.Logger, cfg config.Config, publisher events.Publisher, version string) *Handler {
	comparisonService := services.NewComparisonService(logger, cfg.Forecast, publisher, cfg.Events.Subject)

	return &Handler{
		logger:            logger,
		cfg:               cfg,
		comparisonService: comparisonService,
		version:           version,
	}
}

// NotFound handles 404 errors
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "Route not found",
			Path:    c.Path(),
		},
	})
}
