package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-writing-api/internal/models"
)

// ConnectSQLite opens a file-backed SQLite database for local development.
func ConnectSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path must not be empty")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return db, nil
}

// Connect prefers PostgreSQL when a DSN is configured and falls back to SQLite.
func Connect(postgresDSN, sqlitePath string) (*gorm.DB, error) {
	if postgresDSN != "" {
		return ConnectPostgres(postgresDSN)
	}
	return ConnectSQLite(sqlitePath)
}

// Migrate creates or updates the writing schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Topic{}, &models.Evaluation{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
