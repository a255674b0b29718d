package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aircastio/aircast/internal/logging"
	"github.com/aircastio/aircast/internal/models"
)

// ErrorHandler returns the app-level error handler for errors that escape the
// route handlers: unmatched routes, wrong methods, oversized bodies and any
// unexpected failure. Route handlers map domain errors themselves; whatever
// reaches here gets a status-derived code and, for non-fiber errors, a generic
// message so internals never leak to clients.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
			message = e.Message
		}

		fields := []interface{}{
			"path", c.Path(),
			"method", c.Method(),
			"status", status,
			"error", err,
		}
		if requestID, ok := c.Locals("request_id").(string); ok && requestID != "" {
			fields = append(fields, "request_id", requestID)
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("Request error", fields...)
		} else {
			logger.Warn("Request rejected", fields...)
		}

		detail := models.ErrorDetail{
			Code:    errorCode(status),
			Message: message,
		}
		// Routing failures name the path so clients can spot typos.
		if status == fiber.StatusNotFound || status == fiber.StatusMethodNotAllowed {
			detail.Path = c.Path()
		}

		return c.Status(status).JSON(models.ErrorResponse{Error: detail})
	}
}

// errorCode maps an HTTP status to a stable machine-readable code.
func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "INVALID_INPUT"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestTimeout:
		return "REQUEST_CANCELLED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnprocessableEntity:
		return "UNPROCESSABLE"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL_ERROR"
	}
	return "REQUEST_FAILED"
}
