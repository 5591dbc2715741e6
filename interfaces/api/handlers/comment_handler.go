package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/domain/dto"
	"taskmaster/domain/services"
	"taskmaster/pkg/utils"
)

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

func (h *CommentHandler) ListTaskComments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	comments, err := h.commentService.ListTaskComments(c.UserContext(), c.Params("taskId"), user.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, comments)
}

func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	comment, err := h.commentService.CreateComment(c.UserContext(), user.ID, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.CreatedResponse(c, comment)
}

func (h *CommentHandler) UpdateComment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.UpdateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	comment, err := h.commentService.UpdateComment(c.UserContext(), c.Params("id"), user.ID, &req)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return utils.SuccessResponse(c, comment)
}

func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	if err := h.commentService.DeleteComment(c.UserContext(), c.Params("id"), user.ID); err != nil {
		return utils.HandleError(c, err)
	}

	return utils.MessageResponse(c, "Comment deleted successfully")
}
