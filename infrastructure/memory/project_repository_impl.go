package memory

import (
	"context"
	"sync"

	"taskmaster/domain/models"
	"taskmaster/domain/repositories"
)

type ProjectRepositoryImpl struct {
	mu       sync.RWMutex
	projects []*models.Project
}

func NewProjectRepository() repositories.ProjectRepository {
	return &ProjectRepositoryImpl{}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = append(r.projects, project.Clone())
	return nil
}

func (r *ProjectRepositoryImpl) indexOf(id string) int {
	for i, p := range r.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	return r.projects[i].Clone(), nil
}

func (r *ProjectRepositoryImpl) Mutate(ctx context.Context, id string, fn func(*models.Project) error) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	project := r.projects[i].Clone()
	if err := fn(project); err != nil {
		return nil, err
	}
	r.projects[i] = project.Clone()
	return project, nil
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return repositories.ErrNotFound
	}
	r.projects = append(r.projects[:i], r.projects[i+1:]...)
	return nil
}

func (r *ProjectRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []*models.Project{}
	for _, p := range r.projects {
		if p.HasAccess(userID) {
			result = append(result, p.Clone())
		}
	}
	return result, nil
}

func (r *ProjectRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(id) >= 0, nil
}

func (r *ProjectRepositoryImpl) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.projects)), nil
}
