package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/domain/services"
	"taskmaster/pkg/logger"
	"taskmaster/pkg/utils"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService      services.UserService
	ProjectService   services.ProjectService
	TaskService      services.TaskService
	CommentService   services.CommentService
	DashboardService services.DashboardService
	AppName          string
	Version          string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AuthHandler      *AuthHandler
	ProjectHandler   *ProjectHandler
	TaskHandler      *TaskHandler
	CommentHandler   *CommentHandler
	DashboardHandler *DashboardHandler
	InfoHandler      *InfoHandler
	UserService      services.UserService
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:      NewAuthHandler(services.UserService),
		ProjectHandler:   NewProjectHandler(services.ProjectService),
		TaskHandler:      NewTaskHandler(services.TaskService),
		CommentHandler:   NewCommentHandler(services.CommentService),
		DashboardHandler: NewDashboardHandler(services.DashboardService),
		InfoHandler:      NewInfoHandler(services.AppName, services.Version),
		UserService:      services.UserService,
	}
}

// currentUser returns the identity set by middleware.Protected.
func currentUser(c *fiber.Ctx) (*utils.UserContext, bool) {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(c.UserContext(), "Unauthorized access attempt", "path", c.Path())
		return nil, false
	}
	return user, true
}

// parseBody decodes a JSON body; an empty body leaves out untouched.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		logger.WarnContext(c.UserContext(), "Invalid request body", "path", c.Path(), "error", err)
		return err
	}
	return nil
}
