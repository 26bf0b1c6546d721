package testutil

import (
	"context"
	"testing"

	"project-board-api/internal/ai"
	"project-board-api/internal/database"
	"project-board-api/internal/handlers"
	"project-board-api/internal/realtime"
	"project-board-api/internal/routes"
	"project-board-api/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API is a fully wired router backed by an in-memory database.
type API struct {
	Router *gin.Engine
	DB     *gorm.DB
	Hub    *realtime.Hub
}

// APIOptions tunes NewAPI.
type APIOptions struct {
	Generator   ai.Generator
	AI          ai.Options
	AIRateLimit float64
	Development bool
}

// NewAPI wires repositories, services, the AI mediator and routes the same way the server does.
func NewAPI(t testing.TB, opts APIOptions) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := MustDB(t)
	hub := realtime.NewHub()
	projectRepo := database.NewProjectRepository(db)
	taskRepo := database.NewTaskRepository(db)

	gen := opts.Generator
	if gen == nil {
		gen = ai.GeneratorFunc(func(_ context.Context, model, _ string, _ ai.GenerationConfig) (string, error) {
			return "generated by " + model, nil
		})
	}

	h := handlers.New(
		service.NewProject(projectRepo, hub),
		service.NewTask(projectRepo, taskRepo, hub),
		ai.NewMediator(projectRepo, taskRepo, gen, opts.AI),
		hub,
		handlers.Options{Development: opts.Development},
	)

	return &API{
		Router: routes.SetupRoutes(routes.Config{
			Handler:     h,
			Development: opts.Development,
			AIRateLimit: opts.AIRateLimit,
		}),
		DB:  db,
		Hub: hub,
	}
}
