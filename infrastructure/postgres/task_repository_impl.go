package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskmaster/domain/models"
	"taskmaster/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(newTaskRecord(task)).Error
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var rec taskRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toModel(), nil
}

func (r *TaskRepositoryImpl) Mutate(ctx context.Context, id string, fn func(*models.Task) error) (*models.Task, error) {
	var task *models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec taskRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&rec).Error; err != nil {
			return translate(err)
		}

		task = rec.toModel()
		if err := fn(task); err != nil {
			return err
		}

		res := tx.Model(&taskRecord{}).Where("id = ?", id).Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"assigned_to": task.AssignedTo,
			"status":      string(task.Status),
			"priority":    string(task.Priority),
			"updated_at":  task.UpdatedAt,
		})
		return affected(res)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&taskRecord{}))
}

func (r *TaskRepositoryImpl) find(ctx context.Context, query any, args ...any) ([]*models.Task, error) {
	db := r.db.WithContext(ctx).Order("seq")
	if query != nil {
		db = db.Where(query, args...)
	}

	var recs []taskRecord
	if err := db.Find(&recs).Error; err != nil {
		return nil, err
	}

	tasks := make([]*models.Task, 0, len(recs))
	for i := range recs {
		tasks = append(tasks, recs[i].toModel())
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) ListByProject(ctx context.Context, projectID string) ([]*models.Task, error) {
	return r.find(ctx, "project_id = ?", projectID)
}

func (r *TaskRepositoryImpl) ListByProjects(ctx context.Context, projectIDs []string) ([]*models.Task, error) {
	if len(projectIDs) == 0 {
		return []*models.Task{}, nil
	}
	return r.find(ctx, "project_id IN ?", projectIDs)
}

func (r *TaskRepositoryImpl) ListByAssignee(ctx context.Context, userID string) ([]*models.Task, error) {
	return r.find(ctx, "assigned_to = ?", userID)
}

func (r *TaskRepositoryImpl) List(ctx context.Context) ([]*models.Task, error) {
	return r.find(ctx, nil)
}

func (r *TaskRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&taskRecord{}).Count(&count).Error
	return count, err
}
