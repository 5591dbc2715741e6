package memory

import (
	"context"
	"slices"
	"sync"

	"taskmaster/domain/models"
	"taskmaster/domain/repositories"
)

type TaskRepositoryImpl struct {
	mu    sync.RWMutex
	tasks []*models.Task
}

func NewTaskRepository() repositories.TaskRepository {
	return &TaskRepositoryImpl{}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task.Clone())
	return nil
}

func (r *TaskRepositoryImpl) indexOf(id string) int {
	for i, t := range r.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	return r.tasks[i].Clone(), nil
}

func (r *TaskRepositoryImpl) Mutate(ctx context.Context, id string, fn func(*models.Task) error) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	task := r.tasks[i].Clone()
	if err := fn(task); err != nil {
		return nil, err
	}
	r.tasks[i] = task.Clone()
	return task, nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return repositories.ErrNotFound
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return nil
}

func (r *TaskRepositoryImpl) filter(keep func(*models.Task) bool) []*models.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []*models.Task{}
	for _, t := range r.tasks {
		if keep(t) {
			result = append(result, t.Clone())
		}
	}
	return result
}

func (r *TaskRepositoryImpl) ListByProject(ctx context.Context, projectID string) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool { return t.ProjectID == projectID }), nil
}

func (r *TaskRepositoryImpl) ListByProjects(ctx context.Context, projectIDs []string) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool { return slices.Contains(projectIDs, t.ProjectID) }), nil
}

func (r *TaskRepositoryImpl) ListByAssignee(ctx context.Context, userID string) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool { return t.IsAssignedTo(userID) }), nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context) ([]*models.Task, error) {
	return r.filter(func(*models.Task) bool { return true }), nil
}

func (r *TaskRepositoryImpl) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.tasks)), nil
}
