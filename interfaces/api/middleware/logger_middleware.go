package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"taskmaster/pkg/logger"
)

// LoggerMiddleware logs the start and completion of every request.
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		logger.DebugContext(c.UserContext(), "Request started",
			"method", c.Method(),
			"path", c.Path(),
			"ip", c.IP(),
		)

		err := c.Next()

		// the error handler has not written the response yet
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		logFunc := logger.InfoContext
		if status >= 500 {
			logFunc = logger.ErrorContext
		} else if status >= 400 {
			logFunc = logger.WarnContext
		}

		logFunc(c.UserContext(), "Request completed",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
		)

		return err
	}
}
