package testutil

import (
	"testing"

	"project-board-api/internal/database"
	"project-board-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// MustDB is NewInMemoryDB for tests, closing the database on cleanup.
func MustDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := NewInMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// SeedProject inserts a project with the given id and name.
func SeedProject(t testing.TB, db *gorm.DB, id, name string) models.Project {
	t.Helper()
	p := models.Project{ID: id, Name: name, Description: name + " description"}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// SeedTask inserts a task in the given bucket and order.
func SeedTask(t testing.TB, db *gorm.DB, projectID, id string, status models.TaskStatus, order int) models.Task {
	t.Helper()
	task := models.Task{
		ID:          id,
		Title:       "Task " + id,
		Description: "Description of " + id,
		Status:      status,
		ProjectID:   projectID,
		Order:       order,
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}
