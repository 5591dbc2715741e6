package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/interfaces/api/handlers"
)

func SetupDashboardRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	dashboard := api.Group("/dashboard", protected)
	dashboard.Get("/stats", h.DashboardHandler.GetStats)
	dashboard.Get("/project-overview", h.DashboardHandler.GetProjectOverview)
}
