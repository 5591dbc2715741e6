package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskmaster/pkg/logger"
	"taskmaster/pkg/utils"
)

// ErrorHandler is the last stop for errors returned by handlers.
// Taxonomy errors keep their message; anything else becomes a generic 500.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code == fiber.StatusNotFound {
				return utils.NotFoundResponse(c, "Endpoint not found")
			}
			if fe.Code < fiber.StatusInternalServerError {
				return utils.ErrorResponse(c, fe.Code, fe.Message)
			}
			logger.ErrorContext(c.UserContext(), "Request failed", "path", c.Path(), "status", fe.Code, "error", err)
			return utils.InternalServerErrorResponse(c)
		}

		return utils.HandleError(c, err)
	}
}

// NotFound answers every request no route matched.
func NotFound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "Endpoint not found")
	}
}
