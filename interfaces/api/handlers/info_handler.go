package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/pkg/utils"
)

type InfoHandler struct {
	appName string
	version string
}

func NewInfoHandler(appName, version string) *InfoHandler {
	return &InfoHandler{appName: appName, version: version}
}

func (h *InfoHandler) Root(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.Map{
		"message": "Welcome to " + h.appName,
		"version": h.version,
		"endpoints": fiber.Map{
			"auth":      "/api/auth",
			"projects":  "/api/projects",
			"tasks":     "/api/tasks",
			"dashboard": "/api/dashboard",
			"comments":  "/api/comments",
		},
	})
}

func (h *InfoHandler) Health(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.Map{
		"status":  "ok",
		"service": h.appName,
	})
}
