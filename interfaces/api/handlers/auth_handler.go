package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/domain/dto"
	"taskmaster/domain/services"
	"taskmaster/pkg/utils"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	resp, err := h.userService.Register(c.UserContext(), &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.CreatedResponse(c, resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	resp, err := h.userService.Login(c.UserContext(), &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, resp)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	me, err := h.userService.Me(c.UserContext(), user.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, me)
}
