package repositories

import (
	"context"

	"taskmaster/domain/models"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	// Mutate runs fn on the stored project while holding the write lock and stores the result.
	// When fn returns an error nothing is written and that error is returned unchanged.
	Mutate(ctx context.Context, id string, fn func(project *models.Project) error) (*models.Project, error)
	Delete(ctx context.Context, id string) error
	// ListByUser returns projects the user owns or is a member of, oldest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Project, error)
	// Exists is a cheap presence probe used by orphan accounting.
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
