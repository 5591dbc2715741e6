package postgres

import (
	"context"

	"gorm.io/gorm"

	"taskmaster/domain/models"
	"taskmaster/domain/repositories"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(newUserRecord(user)).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*models.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toModel(), nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toModel(), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userRecord{}).Count(&count).Error
	return count, err
}
