package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/medbooksvc/internal/infrastructure/repositories"
)

// Open creates a new database connection with production-ready settings
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate performs database migration for all required tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBDoctor{}); err != nil {
		return fmt.Errorf("failed to migrate doctors table: %w", err)
	}
	if err := db.AutoMigrate(&repositories.DBSlot{}); err != nil {
		return fmt.Errorf("failed to migrate slots table: %w", err)
	}
	if err := db.AutoMigrate(&repositories.DBAppointment{}); err != nil {
		return fmt.Errorf("failed to migrate appointments table: %w", err)
	}
	return nil
}
