package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Get("/health", h.InfoHandler.Health)
	app.Get("/", h.InfoHandler.Root)
}
