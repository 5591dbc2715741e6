package postgres

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskmaster/domain/repositories"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewDatabase(config DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		config.Host, config.User, config.Password, config.DBName, config.Port, config.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userRecord{},
		&projectRecord{},
		&projectMemberRecord{},
		&taskRecord{},
		&commentRecord{},
	)
}

// translate maps gorm's errors onto the repository sentinels.
// Unique violations arrive as ErrDuplicatedKey because the connection sets TranslateError.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicate
	default:
		return err
	}
}

// affected reports ErrNotFound for writes that touched no row.
func affected(tx *gorm.DB) error {
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
