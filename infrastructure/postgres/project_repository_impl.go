package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskmaster/domain/models"
	"taskmaster/domain/repositories"
)

type ProjectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) repositories.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func orderedMembers(db *gorm.DB) *gorm.DB {
	return db.Order("seq")
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Create(newProjectRecord(project)).Error; err != nil {
			return err
		}
		return insertMembers(tx, project)
	})
}

func insertMembers(tx *gorm.DB, project *models.Project) error {
	rows := memberRecords(project)
	if len(rows) == 0 {
		return nil
	}
	// one row at a time keeps seq in member order
	for i := range rows {
		if err := tx.Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var rec projectRecord
	err := r.db.WithContext(ctx).Preload("Members", orderedMembers).Where("id = ?", id).First(&rec).Error
	if err != nil {
		return nil, translate(err)
	}
	return rec.toModel(), nil
}

// Mutate locks the project row for the whole read-modify-write.
func (r *ProjectRepositoryImpl) Mutate(ctx context.Context, id string, fn func(*models.Project) error) (*models.Project, error) {
	var project *models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec projectRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Members", orderedMembers).
			Where("id = ?", id).
			First(&rec).Error
		if err != nil {
			return translate(err)
		}

		project = rec.toModel()
		if err := fn(project); err != nil {
			return err
		}
		return writeProject(tx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// writeProject rewrites the scalar columns and replaces the member list.
func writeProject(tx *gorm.DB, project *models.Project) error {
	res := tx.Model(&projectRecord{}).Where("id = ?", project.ID).Updates(map[string]any{
		"name":        project.Name,
		"slug":        project.Slug,
		"description": project.Description,
		"updated_at":  project.UpdatedAt,
	})
	if err := affected(res); err != nil {
		return err
	}

	if err := tx.Where("project_id = ?", project.ID).Delete(&projectMemberRecord{}).Error; err != nil {
		return err
	}
	return insertMembers(tx, project)
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&projectMemberRecord{}).Error; err != nil {
			return err
		}
		return affected(tx.Where("id = ?", id).Delete(&projectRecord{}))
	})
}

func (r *ProjectRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]*models.Project, error) {
	db := r.db.WithContext(ctx)
	memberOf := db.Model(&projectMemberRecord{}).Select("project_id").Where("user_id = ?", userID)

	var recs []projectRecord
	err := db.Preload("Members", orderedMembers).
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Order("seq").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	projects := make([]*models.Project, 0, len(recs))
	for i := range recs {
		projects = append(projects, recs[i].toModel())
	}
	return projects, nil
}

func (r *ProjectRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&projectRecord{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ProjectRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&projectRecord{}).Count(&count).Error
	return count, err
}
