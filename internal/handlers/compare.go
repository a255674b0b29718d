package handlers

import (
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/aircastio/aircast/internal/dataset"
	"github.com/aircastio/aircast/internal/models"
	"github.com/aircastio/aircast/internal/services"
)

// Compare handles comparison requests
// POST /v1/compare
func (h *Handler) Compare(c *fiber.Ctx) error {
	var body models.CompareRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	ds, err := buildDataset(&body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_DATA",
				Message: err.Error(),
			},
		})
	}

	result, err := h.comparisonService.Execute(c.Context(), &services.CompareRequest{
		Dataset:       ds,
		TargetColumn:  body.TargetColumn,
		ForecastSteps: body.ForecastSteps,
		TestSize:      body.TestSize,
		Models:        body.Models,
	})
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(result)
}

// buildDataset constructs a dataset from either payload orientation
func buildDataset(body *models.CompareRequest) (*dataset.Dataset, error) {
	switch {
	case len(body.Columns) > 0 && len(body.Rows) > 0:
		return nil, errors.New("provide either columns or rows, not both")
	case len(body.Columns) > 0:
		names := make([]string, 0, len(body.Columns))
		for name := range body.Columns {
			names = append(names, name)
		}
		sort.Strings(names)
		return dataset.FromColumns(names, body.Columns)
	case len(body.Rows) > 0:
		return dataset.FromRows(body.ColumnNames, body.Rows)
	default:
		return nil, errors.New("request data is required: provide columns or rows")
	}
}

// serviceError maps a service error to an HTTP response
func (h *Handler) serviceError(c *fiber.Ctx, err error) error {
	svcErr, ok := err.(*services.ServiceError)
	if !ok {
		h.logger.Error("Unclassified handler error", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: err.Error(),
			},
		})
	}

	status := fiber.StatusInternalServerError
	switch svcErr.Code {
	case "INVALID_INPUT":
		status = fiber.StatusBadRequest
	case "NO_VALID_MODEL":
		status = fiber.StatusUnprocessableEntity
	case "REQUEST_CANCELLED":
		status = fiber.StatusRequestTimeout
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    svcErr.Code,
			Message: svcErr.Message,
			Details: svcErr.Details,
		},
	})
}
