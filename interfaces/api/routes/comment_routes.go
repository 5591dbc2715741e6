package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/interfaces/api/handlers"
)

func SetupCommentRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	comments := api.Group("/comments", protected)
	comments.Get("/task/:taskId", h.CommentHandler.ListTaskComments)
	comments.Post("/", h.CommentHandler.CreateComment)
	comments.Put("/:id", h.CommentHandler.UpdateComment)
	comments.Delete("/:id", h.CommentHandler.DeleteComment)
}
