package utils

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/pkg/apperror"
	"taskmaster/pkg/logger"
)

type ErrorBody struct {
	Error string `json:"error"`
}

type MessageBody struct {
	Message string `json:"message"`
}

// ========== Success Responses ==========

func SuccessResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

func CreatedResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func MessageResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(MessageBody{Message: message})
}

// ========== Error Responses ==========

func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorBody{Error: message})
}

func BadRequestResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusBadRequest, message)
}

func UnauthorizedResponse(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Authentication required"
	}
	return ErrorResponse(c, fiber.StatusUnauthorized, message)
}

func NotFoundResponse(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return ErrorResponse(c, fiber.StatusNotFound, message)
}

func InternalServerErrorResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, fiber.StatusInternalServerError, "Something went wrong")
}

// HandleError converts a service error into its taxonomy response.
// Errors outside the taxonomy become a generic 500 and are logged with their detail.
func HandleError(c *fiber.Ctx, err error) error {
	ctx := c.UserContext()

	appErr, ok := apperror.As(err)
	if !ok {
		logger.ErrorContext(ctx, "Unhandled error", "path", c.Path(), "error", err)
		return InternalServerErrorResponse(c)
	}

	if appErr.Kind == apperror.KindInternal {
		logger.ErrorContext(ctx, "Internal error", "path", c.Path(), "error", appErr.Error())
		return InternalServerErrorResponse(c)
	}

	return ErrorResponse(c, appErr.Kind.Status(), appErr.Message)
}
