package database

import (
	"fmt"

	"project-board-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite database at dsn and runs migrations.
// glebarez/sqlite is a pure Go driver, so no CGO is required.
func Open(dsn string, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}

	if err := configure(db); err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the projects and tasks tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Project{}, &models.Task{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// configure pins the pool to a single connection: SQLite has one writer and
// every ":memory:" connection would otherwise see its own empty database.
func configure(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
