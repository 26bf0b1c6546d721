package database

import (
	"context"
	"errors"

	"project-board-api/internal"
	"project-board-api/internal/models"

	"gorm.io/gorm"
)

// ProjectRepository persists projects.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository returns a repository backed by db.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns every project, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "Error fetching projects")
	}
	return projects, nil
}

// Find returns the project with the given id.
func (r *ProjectRepository) Find(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Project{}, internal.NewErrorf(internal.ErrorCodeNotFound, "Project not found")
	}
	if err != nil {
		return models.Project{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "Error fetching project")
	}
	return project, nil
}

// Create inserts a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "Error creating project")
	}
	return nil
}

// Save writes every field of an existing project.
func (r *ProjectRepository) Save(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "Error updating project")
	}
	return nil
}

// Delete removes the project and all of its tasks in one transaction.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "Project not found")
	}
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "Error deleting project")
	}
	return nil
}
