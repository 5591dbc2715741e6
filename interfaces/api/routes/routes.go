package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/interfaces/api/handlers"
	"taskmaster/interfaces/api/middleware"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers) {
	SetupHealthRoutes(app, h)

	api := app.Group("/api")
	protected := middleware.Protected(h.UserService)

	SetupAuthRoutes(api, h, protected)
	SetupProjectRoutes(api, h, protected)
	SetupTaskRoutes(api, h, protected)
	SetupCommentRoutes(api, h, protected)
	SetupDashboardRoutes(api, h, protected)

	app.Use(middleware.NotFound())
}
