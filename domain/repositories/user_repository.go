package repositories

import (
	"context"

	"taskmaster/domain/models"
)

type UserRepository interface {
	// Create fails with ErrDuplicate when the email is already registered.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail matches the stored email exactly, case-sensitive.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}
