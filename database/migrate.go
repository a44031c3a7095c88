package database

import (
	"fmt"

	"medcase_backend/internal/config"
	"medcase_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens the GORM connection using the configured DSN. The
// connection is cached for the process lifetime.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates every model.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	return Migrate(db)
}

// Migrate runs the schema migration on an existing connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Case{},
		&models.Comment{},
		&models.Like{},
		&models.Save{},
		&models.VerificationRequest{},
		&models.Notification{},
		&models.Report{},
		&models.Upload{},
	)
}
