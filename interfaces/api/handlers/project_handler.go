package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/domain/dto"
	"taskmaster/domain/services"
	"taskmaster/pkg/utils"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	projects, err := h.projectService.ListProjects(c.UserContext(), user.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, projects)
}

func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	project, err := h.projectService.GetProject(c.UserContext(), c.Params("id"), user.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, project)
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	project, err := h.projectService.CreateProject(c.UserContext(), user.ID, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.CreatedResponse(c, project)
}

func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.UpdateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	project, err := h.projectService.UpdateProject(c.UserContext(), c.Params("id"), user.ID, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, project)
}

func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	if err := h.projectService.DeleteProject(c.UserContext(), c.Params("id"), user.ID); err != nil {
		return utils.HandleError(c, err)
	}

	return utils.MessageResponse(c, "Project deleted successfully")
}

func (h *ProjectHandler) AddMember(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.AddMemberRequest
	if err := parseBody(c, &req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	project, err := h.projectService.AddMember(c.UserContext(), c.Params("id"), user.ID, req.UserID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, project)
}

func (h *ProjectHandler) RemoveMember(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	project, err := h.projectService.RemoveMember(c.UserContext(), c.Params("id"), user.ID, c.Params("userId"))
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, project)
}
