package serviceimpl

import (
	"context"
	"errors"
	"time"

	"taskmaster/domain/models"
	"taskmaster/domain/ports"
	"taskmaster/domain/repositories"
	"taskmaster/pkg/apperror"
	"taskmaster/pkg/logger"
	"taskmaster/pkg/utils"
)

// Clock is the time source of every service; tests replace it.
type Clock func() time.Time

const (
	msgProjectNotFound = "Project not found"
	msgProjectAccess   = "You do not have access to this project"
	msgTaskNotFound    = "Task not found"
	msgTaskAccess      = "You do not have access to this task"
	msgCommentNotFound = "Comment not found"
	msgUserNotFound    = "User not found"
)

// repoError turns a repository failure into the taxonomy.
func repoError(err error, notFound string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.NotFound(notFound)
	}
	return apperror.Internal(err)
}

func validate(req any) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperror.Validation(utils.ValidationMessage(err))
	}
	return nil
}

// accessibleProject loads a project and checks that userID is its owner or a member.
func accessibleProject(ctx context.Context, projects repositories.ProjectRepository, projectID, userID, forbidden string) (*models.Project, error) {
	project, err := projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, repoError(err, msgProjectNotFound)
	}
	if !project.HasAccess(userID) {
		logger.WarnContext(ctx, "Project access denied", "project_id", projectID, "user_id", userID)
		return nil, apperror.Forbidden(forbidden)
	}
	return project, nil
}

// lookupUser returns nil when the user is unknown.
func lookupUser(ctx context.Context, users repositories.UserRepository, id string) *models.User {
	if id == "" {
		return nil
	}
	user, err := users.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return user
}

// invalidateDashboards is called after every store mutation.
func invalidateDashboards(ctx context.Context, cache ports.DashboardCache) {
	if err := cache.Invalidate(ctx); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate dashboard cache", "error", err)
	}
}
