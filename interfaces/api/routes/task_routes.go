package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/interfaces/api/handlers"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	tasks := api.Group("/tasks", protected)
	tasks.Get("/project/:projectId", h.TaskHandler.ListProjectTasks)
	// must be registered before /:id
	tasks.Get("/my/tasks", h.TaskHandler.ListMyTasks)
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Get("/:id", h.TaskHandler.GetTask)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
}
