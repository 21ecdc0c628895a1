// Package database owns the GORM connection and schema migration.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rapidjobs_backend/internal/config"
	"rapidjobs_backend/internal/models"
)

var gormDB *gorm.DB

// Connect opens the GORM connection. TranslateError is required so unique
// constraint violations surface as gorm.ErrDuplicatedKey in repositories.
func Connect() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Request{},
		&models.Review{},
		&models.Message{},
		&models.Notification{},
	)
}
