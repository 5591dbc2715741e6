package memory

import (
	"context"
	"slices"
	"sync"

	"taskmaster/domain/models"
	"taskmaster/domain/repositories"
)

type CommentRepositoryImpl struct {
	mu       sync.RWMutex
	comments []models.Comment
}

func NewCommentRepository() repositories.CommentRepository {
	return &CommentRepositoryImpl{}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *CommentRepositoryImpl) indexOf(id string) int {
	for i := range r.comments {
		if r.comments[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *CommentRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	c := r.comments[i]
	return &c, nil
}

func (r *CommentRepositoryImpl) Mutate(ctx context.Context, id string, fn func(*models.Comment) error) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	comment := r.comments[i]
	if err := fn(&comment); err != nil {
		return nil, err
	}
	r.comments[i] = comment
	result := comment
	return &result, nil
}

func (r *CommentRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return repositories.ErrNotFound
	}
	r.comments = append(r.comments[:i], r.comments[i+1:]...)
	return nil
}

func (r *CommentRepositoryImpl) filter(keep func(*models.Comment) bool) []*models.Comment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []*models.Comment{}
	for i := range r.comments {
		if keep(&r.comments[i]) {
			c := r.comments[i]
			result = append(result, &c)
		}
	}
	return result
}

func (r *CommentRepositoryImpl) ListByTask(ctx context.Context, taskID string) ([]*models.Comment, error) {
	return r.filter(func(c *models.Comment) bool { return c.TaskID == taskID }), nil
}

func (r *CommentRepositoryImpl) ListByTasks(ctx context.Context, taskIDs []string) ([]*models.Comment, error) {
	return r.filter(func(c *models.Comment) bool { return slices.Contains(taskIDs, c.TaskID) }), nil
}

func (r *CommentRepositoryImpl) List(ctx context.Context) ([]*models.Comment, error) {
	return r.filter(func(*models.Comment) bool { return true }), nil
}

func (r *CommentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.comments)), nil
}
