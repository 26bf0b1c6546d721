package routes

import (
	"net/http"
	"time"

	"project-board-api/internal/handlers"
	"project-board-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the API info endpoint.
const Version = "1.0.0"

// Config wires the router.
type Config struct {
	Handler     *handlers.Handler
	Logger      *zap.Logger
	Development bool
	Origins     middleware.OriginPolicy
	// AIRateLimit is the per-client request rate of the AI routes; 0 disables it.
	AIRateLimit float64
}

func SetupRoutes(conf Config) *gin.Engine {
	logger := conf.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	handlers.RegisterValidators()

	ginRouter := gin.New()
	ginRouter.Use(
		middleware.Recovery(logger, conf.Development),
		middleware.RequestLogger(logger.Named("http")),
		middleware.CORS(conf.Origins),
	)

	ginRouter.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Project Board API",
			"version": Version,
			"endpoints": gin.H{
				"health":   "/health",
				"projects": "/api/projects",
				"tasks":    "/api/tasks/:projectId",
				"reorder":  "/api/tasks/reorder",
				"ai":       "/api/ai",
				"realtime": "/api/ws/:projectId",
			},
		})
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	h := conf.Handler
	api := ginRouter.Group("/api")
	{
		projects := api.Group("/projects")
		projects.GET("", h.GetProjects)
		projects.POST("", h.CreateProject)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)

		tasks := api.Group("/tasks")
		// reorder must be registered before the :taskId catch-all
		tasks.PUT("/reorder", h.ReorderTasks)
		tasks.GET("/:projectId", h.GetTasks)
		tasks.POST("/:projectId", h.CreateTask)
		tasks.PUT("/:taskId", h.UpdateTask)
		tasks.DELETE("/:taskId", h.DeleteTask)

		assistant := api.Group("/ai")
		assistant.Use(middleware.RateLimit(conf.AIRateLimit))
		assistant.POST("/summarize", h.Summarize)
		assistant.POST("/ask", h.Ask)

		api.GET("/ws/:projectId", h.StreamProject)
	}

	ginRouter.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})

	return ginRouter
}
