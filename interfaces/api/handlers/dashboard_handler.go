package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/domain/services"
	"taskmaster/pkg/utils"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	stats, err := h.dashboardService.GetStats(c.UserContext(), user.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, stats)
}

func (h *DashboardHandler) GetProjectOverview(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	overview, err := h.dashboardService.GetProjectOverview(c.UserContext(), user.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, overview)
}
