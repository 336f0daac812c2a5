package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/memelens/internal/api"
	"github.com/timmy/memelens/internal/config"
	"github.com/timmy/memelens/internal/logger"
	"github.com/timmy/memelens/internal/repository"
	"github.com/timmy/memelens/internal/service"
	"github.com/timmy/memelens/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	memeRepo := repository.NewMemeRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	// Initialize upload storage (local disk or S3-compatible)
	objectStorage, err := storage.NewStorage(&cfg.Upload, cfg.Server.PublicBaseURL)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize upload storage")
	}
	if s3Storage, ok := objectStorage.(*storage.S3Storage); ok {
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
		}
	}

	// Initialize services
	analysisService := service.NewAnalysisService(&service.AnalysisConfig{
		Provider: cfg.AI.Provider,
		Model:    cfg.AI.Model,
		APIKey:   cfg.AI.APIKey,
		BaseURL:  cfg.AI.BaseURL,
	}, appLogger)

	if analysisService.IsEnabled() {
		appLogger.WithField("model", cfg.AI.Model).Info("Meme analysis enabled")
	}

	memeService := service.NewMemeService(memeRepo)
	submissionService := service.NewSubmissionService(
		submissionRepo,
		memeRepo,
		analysisService,
		appLogger,
		nil,
	)

	// Setup router
	router := api.SetupRouter(memeService, submissionService, objectStorage, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
