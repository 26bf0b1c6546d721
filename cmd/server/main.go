package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project-board-api/internal"
	"project-board-api/internal/ai"
	"project-board-api/internal/config"
	"project-board-api/internal/database"
	"project-board-api/internal/handlers"
	"project-board-api/internal/logging"
	"project-board-api/internal/middleware"
	"project-board-api/internal/realtime"
	"project-board-api/internal/routes"
	"project-board-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	var envFile string
	flag.StringVar(&envFile, "env", ".env", "Environment variables filename")
	flag.Parse()

	errC, err := run(envFile)
	if err != nil {
		log.Fatalf("Couldn't run: %s", err)
	}

	if err := <-errC; err != nil {
		log.Fatalf("Error while running: %s", err)
	}
}

func run(envFile string) (<-chan error, error) {
	conf, err := config.Load(envFile)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "config.Load")
	}

	logger, err := logging.New(conf.IsDevelopment())
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "logging.New")
	}
	if !conf.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(conf.DatabaseURL, conf.IsDevelopment())
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "database.Open")
	}
	logger.Info("database ready", zap.String("dsn", conf.DatabaseURL))

	gemini, err := ai.NewGemini(context.Background(), conf.GeminiAPIKey)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "ai.NewGemini")
	}
	if conf.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set; AI endpoints will fail")
	}

	srv := newServer(serverConfig{
		Config: conf,
		DB:     db,
		Gen:    gemini,
		Logger: logger,
	})

	errC := make(chan error, 1)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	go func() {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		defer func() {
			_ = logger.Sync()
			_ = database.Close(db)
			stop()
			cancel()
			close(errC)
		}()

		srv.SetKeepAlivesEnabled(false)

		if err := srv.Shutdown(ctxTimeout); err != nil {
			errC <- err
		}
		logger.Info("Shutdown completed")
	}()

	go func() {
		logger.Info("Listening and serving",
			zap.String("address", srv.Addr),
			zap.String("env", conf.Env),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	return errC, nil
}

type serverConfig struct {
	Config config.Config
	DB     *gorm.DB
	Gen    ai.Generator
	Logger *zap.Logger
}

func newServer(conf serverConfig) *http.Server {
	hub := realtime.NewHub()
	projectRepo := database.NewProjectRepository(conf.DB)
	taskRepo := database.NewTaskRepository(conf.DB)

	mediator := ai.NewMediator(projectRepo, taskRepo, conf.Gen, ai.Options{
		PreferredModel: conf.Config.GeminiModel,
		CacheTTL:       conf.Config.AICacheTTL,
		Logger:         conf.Logger,
	})
	conf.Logger.Info("AI models configured", zap.Strings("models", mediator.Models()))

	origins := middleware.OriginPolicy{
		Allowed:       conf.Config.AllowedOrigins,
		PreviewSuffix: conf.Config.PreviewSuffix,
	}

	h := handlers.New(
		service.NewProject(projectRepo, hub),
		service.NewTask(projectRepo, taskRepo, hub),
		mediator,
		hub,
		handlers.Options{
			Development: conf.Config.IsDevelopment(),
			Logger:      conf.Logger,
			CheckOrigin: origins.CheckOrigin,
		},
	)

	router := routes.SetupRoutes(routes.Config{
		Handler:     h,
		Logger:      conf.Logger,
		Development: conf.Config.IsDevelopment(),
		Origins:     origins,
		AIRateLimit: conf.Config.AIRateLimit,
	})

	// No WriteTimeout: model calls may take long and websocket streams stay open.
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", conf.Config.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
