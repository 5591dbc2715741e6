package memory

import (
	"context"
	"sync"

	"taskmaster/domain/models"
	"taskmaster/domain/repositories"
)

type UserRepositoryImpl struct {
	mu    sync.RWMutex
	users []models.User
}

func NewUserRepository() repositories.UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *UserRepositoryImpl) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}
