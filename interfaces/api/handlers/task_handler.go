package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/domain/dto"
	"taskmaster/domain/services"
	"taskmaster/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) ListProjectTasks(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	tasks, err := h.taskService.ListProjectTasks(c.UserContext(), c.Params("projectId"), user.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, tasks)
}

func (h *TaskHandler) ListMyTasks(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	tasks, err := h.taskService.ListMyTasks(c.UserContext(), user.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, tasks)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	task, err := h.taskService.GetTask(c.UserContext(), c.Params("id"), user.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, task)
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateTaskRequest
	if err := parseBody(c, &req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	task, err := h.taskService.CreateTask(c.UserContext(), user.ID, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.CreatedResponse(c, task)
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.UpdateTaskRequest
	if err := parseBody(c, &req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	task, err := h.taskService.UpdateTask(c.UserContext(), c.Params("id"), user.ID, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, task)
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	if err := h.taskService.DeleteTask(c.UserContext(), c.Params("id"), user.ID); err != nil {
		return utils.HandleError(c, err)
	}

	return utils.MessageResponse(c, "Task deleted successfully")
}
