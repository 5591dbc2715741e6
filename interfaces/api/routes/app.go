package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"taskmaster/interfaces/api/handlers"
	"taskmaster/interfaces/api/middleware"
)

type AppOptions struct {
	Name         string
	AllowOrigins string
}

// NewApp builds the Fiber application with the middleware chain and all routes.
func NewApp(opts AppOptions, h *handlers.Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		AppName:               opts.Name,
		DisableStartupMessage: true,
	})

	// order matters: request id before logger, recover innermost
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware(opts.AllowOrigins))
	app.Use(recover.New())

	SetupRoutes(app, h)
	return app
}
