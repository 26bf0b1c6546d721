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

// TaskPatch carries the optional fields of a task update; nil means unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Order       *int
}

// Task defines the application service in charge of tasks.
type Task struct {
	projects ProjectStore
	repo     TaskStore
	events   EventPublisher
}

// NewTask returns the task service.
func NewTask(projects ProjectStore, repo TaskStore, events EventPublisher) *Task {
	return &Task{projects: projects, repo: repo, events: publisherOrNoop(events)}
}

// ListByProject returns the tasks of an existing project sorted by order.
func (s *Task) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	if _, err := s.projects.Find(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

// Create appends a task to the project; it gets order = number of existing tasks.
func (s *Task) Create(ctx context.Context, projectID, title, description string, status models.TaskStatus) (models.Task, error) {
	if _, err := s.projects.Find(ctx, projectID); err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      status,
		ProjectID:   projectID,
	}
	if task.Title == "" || task.Description == "" {
		return models.Task{}, internal.NewErrorf(internal.ErrorCodeInvalidArgument, "Please provide both title and description")
	}
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if err := validateTask(task); err != nil {
		return models.Task{}, err
	}

	count, err := s.repo.CountByProject(ctx, projectID)
	if err != nil {
		return models.Task{}, err
	}
	task.Order = count

	if err := s.repo.Create(ctx, &task); err != nil {
		return models.Task{}, err
	}

	s.events.Publish(realtime.Event{Type: realtime.EventTaskCreated, ProjectID: projectID, TaskID: task.ID})
	return task, nil
}

// Update applies the provided fields of patch. The owning project never changes.
func (s *Task) Update(ctx context.Context, id string, patch TaskPatch) (models.Task, error) {
	task, err := s.repo.Find(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Order != nil {
		task.Order = *patch.Order
	}
	if err := validateTask(task); err != nil {
		return models.Task{}, err
	}
	if err := s.repo.Save(ctx, &task); err != nil {
		return models.Task{}, err
	}

	s.events.Publish(realtime.Event{Type: realtime.EventTaskUpdated, ProjectID: task.ProjectID, TaskID: task.ID})
	return task, nil
}

// Delete removes one task.
func (s *Task) Delete(ctx context.Context, id string) error {
	task, err := s.repo.Find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(realtime.Event{Type: realtime.EventTaskDeleted, ProjectID: task.ProjectID, TaskID: id})
	return nil
}

// Reorder persists a bulk set of (order, status) assignments.
func (s *Task) Reorder(ctx context.Context, items []models.ReorderItem) error {
	if items == nil {
		return internal.NewErrorf(internal.ErrorCodeInvalidArgument, "Please provide an array of tasks")
	}
	for _, item := range items {
		err := validation.ValidateStruct(&item,
			validation.Field(&item.ID, validation.Required),
			validation.Field(&item.Order, validation.Min(0)),
			validation.Field(&item.Status, validation.Required, validation.By(validStatus)),
		)
		if err != nil {
			return invalid(err)
		}
	}

	if err := s.repo.Reorder(ctx, items); err != nil {
		return err
	}

	if len(items) > 0 {
		if task, err := s.repo.Find(ctx, items[0].ID); err == nil {
			s.events.Publish(realtime.Event{Type: realtime.EventTasksReordered, ProjectID: task.ProjectID})
		}
	}
	return nil
}

func validateTask(t models.Task) error {
	err := validation.ValidateStruct(&t,
		validation.Field(&t.Title, validation.Required, validation.RuneLength(1, models.TaskTitleMax)),
		validation.Field(&t.Description, validation.Required, validation.RuneLength(1, models.TaskDescriptionMax)),
		validation.Field(&t.Status, validation.Required, validation.By(validStatus)),
		validation.Field(&t.Order, validation.Min(0)),
	)
	if err != nil {
		return invalid(err)
	}
	return nil
}

func validStatus(value interface{}) error {
	s, _ := value.(models.TaskStatus)
	if !s.Valid() {
		return validation.NewError("validation_task_status", "must be one of To Do, In Progress, Done")
	}
	return nil
}
