package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aircastio/aircast/internal/forecast"
	"github.com/aircastio/aircast/internal/models"
)

// ListModels handles model listing requests
// GET /v1/models
func (h *Handler) ListModels(c *fiber.Ctx) error {
	seasonal := forecast.NewSeasonalForecaster()
	if h.cfg.Forecast.Seasonal.Period > 0 {
		seasonal.Period = h.cfg.Forecast.Seasonal.Period
	}
	gbt := forecast.NewGBTForecaster()
	if len(h.cfg.Forecast.GBT.Lags) > 0 {
		gbt.Lags = h.cfg.Forecast.GBT.Lags
	}

	return c.JSON(models.ModelListResponse{
		Models: []models.ModelInfo{
			{
				Name:            "seasonal",
				Description:     "Holt-Winters triple exponential smoothing",
				MinObservations: seasonal.MinObservations(),
			},
			{
				Name:            "gbt",
				Description:     "Gradient-boosted regression trees on lag features",
				MinObservations: gbt.MinObservations(),
			},
		},
	})
}
