package repositories

import (
	"context"

	"taskmaster/domain/models"
)

// TaskRepository lists in insertion order unless noted.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	// Mutate applies fn to the stored task under the write lock, see ProjectRepository.Mutate.
	Mutate(ctx context.Context, id string, fn func(task *models.Task) error) (*models.Task, error)
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]*models.Task, error)
	ListByProjects(ctx context.Context, projectIDs []string) ([]*models.Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]*models.Task, error)
	List(ctx context.Context) ([]*models.Task, error)
	Count(ctx context.Context) (int64, error)
}
