// Package service holds the CRUD rules for projects and tasks.
package service

import (
	"context"

	"project-board-api/internal"
	"project-board-api/internal/models"
	"project-board-api/internal/realtime"
)

// ProjectStore defines the datastore persisting projects.
type ProjectStore interface {
	List(ctx context.Context) ([]models.Project, error)
	Find(ctx context.Context, id string) (models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Save(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
}

// TaskStore defines the datastore persisting tasks.
type TaskStore interface {
	ListByProject(ctx context.Context, projectID string) ([]models.Task, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
	Find(ctx context.Context, id string) (models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Save(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, items []models.ReorderItem) error
}

// EventPublisher receives board change notifications.
type EventPublisher interface {
	Publish(evt realtime.Event) int
}

type noopPublisher struct{}

func (noopPublisher) Publish(realtime.Event) int { return 0 }

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func invalid(err error) error {
	return internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "Validation failed")
}
