package services

import (
	"context"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
)

type ProjectService interface {
	ListProjects(ctx context.Context, userID string) ([]*models.Project, error)
	GetProject(ctx context.Context, projectID, userID string) (*models.Project, error)
	CreateProject(ctx context.Context, userID string, req *dto.CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, projectID, userID string, req *dto.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID, userID string) error
	AddMember(ctx context.Context, projectID, userID, newMemberID string) (*models.Project, error)
	RemoveMember(ctx context.Context, projectID, userID, targetID string) (*models.Project, error)
}
