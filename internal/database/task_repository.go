package database

import (
	"context"
	"errors"

	"project-board-api/internal"
	"project-board-api/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// reorderConcurrency bounds the number of in-flight updates of one bulk reorder.
const reorderConcurrency = 8

// TaskRepository persists tasks.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns a repository backed by db.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListByProject returns the tasks of a project sorted by order ascending.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position asc").
		Order("created_at asc").
		Find(&tasks).Error
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "Error fetching tasks")
	}
	return tasks, nil
}

// CountByProject returns how many tasks the project has across all buckets.
func (r *TaskRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Task{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		return 0, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "Error counting tasks")
	}
	return int(count), nil
}

// Find returns the task with the given id.
func (r *TaskRepository) Find(ctx context.Context, id string) (models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Task{}, internal.NewErrorf(internal.ErrorCodeNotFound, "Task not found")
	}
	if err != nil {
		return models.Task{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "Error fetching task")
	}
	return task, nil
}

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "Error creating task")
	}
	return nil
}

// Save writes every field of an existing task.
func (r *TaskRepository) Save(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "Error updating task")
	}
	return nil
}

// Delete removes a single task.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if res.Error != nil {
		return internal.WrapErrorf(res.Error, internal.ErrorCodeUnknown, "Error deleting task")
	}
	if res.RowsAffected == 0 {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "Task not found")
	}
	return nil
}

// Reorder applies every (order, status) pair as an independent update.
// The updates run concurrently and are not transactional: when one fails the
// batch reports an error but the updates that already landed stay applied.
// Items whose id matches no task are skipped.
func (r *TaskRepository) Reorder(ctx context.Context, items []models.ReorderItem) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reorderConcurrency)

	for _, item := range items {
		g.Go(func() error {
			return r.db.WithContext(gctx).
				Model(&models.Task{}).
				Where("id = ?", item.ID).
				Updates(map[string]any{
					"position": item.Order,
					"status":   item.Status,
				}).Error
		})
	}

	if err := g.Wait(); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "Error reordering tasks")
	}
	return nil
}
