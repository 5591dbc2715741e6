package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskmaster/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware reuses the caller's request id or creates one.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDHeader, requestID)
		c.SetUserContext(logger.ContextWithRequestID(c.Context(), requestID))
		c.Locals("request_id", requestID)

		return c.Next()
	}
}
