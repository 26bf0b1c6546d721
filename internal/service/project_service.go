package service

import (
	"context"
	"strings"

	"project-board-api/internal"
	"project-board-api/internal/models"
	"project-board-api/internal/realtime"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ProjectPatch carries the optional fields of a project update; empty strings are ignored.
type ProjectPatch struct {
	Name        *string
	Description *string
}

// Project defines the application service in charge of projects.
type Project struct {
	repo   ProjectStore
	events EventPublisher
}

// NewProject returns the project service.
func NewProject(repo ProjectStore, events EventPublisher) *Project {
	return &Project{repo: repo, events: publisherOrNoop(events)}
}

// List returns every project, newest first.
func (s *Project) List(ctx context.Context) ([]models.Project, error) {
	return s.repo.List(ctx)
}

// Get returns one project.
func (s *Project) Get(ctx context.Context, id string) (models.Project, error) {
	return s.repo.Find(ctx, id)
}

// Create validates and stores a new project.
func (s *Project) Create(ctx context.Context, name, description string) (models.Project, error) {
	project := models.Project{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if project.Name == "" || project.Description == "" {
		return models.Project{}, internal.NewErrorf(internal.ErrorCodeInvalidArgument, "Please provide both name and description")
	}
	if err := validateProject(project); err != nil {
		return models.Project{}, err
	}
	if err := s.repo.Create(ctx, &project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// Update applies the non-empty fields of patch.
func (s *Project) Update(ctx context.Context, id string, patch ProjectPatch) (models.Project, error) {
	project, err := s.repo.Find(ctx, id)
	if err != nil {
		return models.Project{}, err
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		project.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) != "" {
		project.Description = strings.TrimSpace(*patch.Description)
	}
	if err := validateProject(project); err != nil {
		return models.Project{}, err
	}
	if err := s.repo.Save(ctx, &project); err != nil {
		return models.Project{}, err
	}

	s.events.Publish(realtime.Event{Type: realtime.EventProjectUpdated, ProjectID: project.ID})
	return project, nil
}

// Delete removes a project together with its tasks.
func (s *Project) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(realtime.Event{Type: realtime.EventProjectDeleted, ProjectID: id})
	return nil
}

func validateProject(p models.Project) error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.RuneLength(1, models.ProjectNameMax)),
		validation.Field(&p.Description, validation.Required, validation.RuneLength(1, models.ProjectDescriptionMax)),
	)
	if err != nil {
		return invalid(err)
	}
	return nil
}
