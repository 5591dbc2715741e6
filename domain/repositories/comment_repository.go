package repositories

import (
	"context"

	"taskmaster/domain/models"
)

// CommentRepository lists in insertion order.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Mutate(ctx context.Context, id string, fn func(comment *models.Comment) error) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
	ListByTask(ctx context.Context, taskID string) ([]*models.Comment, error)
	ListByTasks(ctx context.Context, taskIDs []string) ([]*models.Comment, error)
	List(ctx context.Context) ([]*models.Comment, error)
	Count(ctx context.Context) (int64, error)
}
