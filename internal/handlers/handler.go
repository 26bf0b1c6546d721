// Package handlers exposes the project board over HTTP.
package handlers

import (
	"context"
	"net/http"

	"project-board-api/internal/ai"
	"project-board-api/internal/models"
	"project-board-api/internal/realtime"
	"project-board-api/internal/service"

	"go.uber.org/zap"
)

// ProjectService is the project use case consumed by the handlers.
type ProjectService interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (models.Project, error)
	Create(ctx context.Context, name, description string) (models.Project, error)
	Update(ctx context.Context, id string, patch service.ProjectPatch) (models.Project, error)
	Delete(ctx context.Context, id string) error
}

// TaskService is the task use case consumed by the handlers.
type TaskService interface {
	ListByProject(ctx context.Context, projectID string) ([]models.Task, error)
	Create(ctx context.Context, projectID, title, description string, status models.TaskStatus) (models.Task, error)
	Update(ctx context.Context, id string, patch service.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, items []models.ReorderItem) error
}

// Assistant answers AI requests about a project.
type Assistant interface {
	Summarize(ctx context.Context, projectID string) (ai.Summary, error)
	Ask(ctx context.Context, projectID, question string) (ai.Answer, error)
}

// Options tunes a Handler.
type Options struct {
	Development bool
	Logger      *zap.Logger
	// CheckOrigin validates websocket upgrades; nil accepts every origin.
	CheckOrigin func(r *http.Request) bool
}

// Handler serves every API route.
type Handler struct {
	projects ProjectService
	tasks    TaskService
	ai       Assistant
	hub      *realtime.Hub
	logger   *zap.Logger
	dev      bool

	checkOrigin func(r *http.Request) bool
}

// New returns a Handler. hub may be nil when websocket streaming is not needed.
func New(projects ProjectService, tasks TaskService, assistant Assistant, hub *realtime.Hub, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		projects:    projects,
		tasks:       tasks,
		ai:          assistant,
		hub:         hub,
		logger:      logger.Named("http"),
		dev:         opts.Development,
		checkOrigin: opts.CheckOrigin,
	}
}
