package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskmaster/domain/models"
	"taskmaster/domain/repositories"
)

type CommentRepositoryImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) repositories.CommentRepository {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(newCommentRecord(comment)).Error
}

func (r *CommentRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var rec commentRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toModel(), nil
}

func (r *CommentRepositoryImpl) Mutate(ctx context.Context, id string, fn func(*models.Comment) error) (*models.Comment, error) {
	var comment *models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec commentRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&rec).Error; err != nil {
			return translate(err)
		}

		comment = rec.toModel()
		if err := fn(comment); err != nil {
			return err
		}

		res := tx.Model(&commentRecord{}).Where("id = ?", id).Updates(map[string]any{
			"content":    comment.Content,
			"updated_at": comment.UpdatedAt,
		})
		return affected(res)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepositoryImpl) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&commentRecord{}))
}

func (r *CommentRepositoryImpl) find(ctx context.Context, query any, args ...any) ([]*models.Comment, error) {
	db := r.db.WithContext(ctx).Order("seq")
	if query != nil {
		db = db.Where(query, args...)
	}

	var recs []commentRecord
	if err := db.Find(&recs).Error; err != nil {
		return nil, err
	}

	comments := make([]*models.Comment, 0, len(recs))
	for i := range recs {
		comments = append(comments, recs[i].toModel())
	}
	return comments, nil
}

func (r *CommentRepositoryImpl) ListByTask(ctx context.Context, taskID string) ([]*models.Comment, error) {
	return r.find(ctx, "task_id = ?", taskID)
}

func (r *CommentRepositoryImpl) ListByTasks(ctx context.Context, taskIDs []string) ([]*models.Comment, error) {
	if len(taskIDs) == 0 {
		return []*models.Comment{}, nil
	}
	return r.find(ctx, "task_id IN ?", taskIDs)
}

func (r *CommentRepositoryImpl) List(ctx context.Context) ([]*models.Comment, error) {
	return r.find(ctx, nil)
}

func (r *CommentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&commentRecord{}).Count(&count).Error
	return count, err
}
