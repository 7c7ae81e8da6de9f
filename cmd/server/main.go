package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/catalog-console/config"
	"github.com/ikkim/catalog-console/internal/app/controller"
	"github.com/ikkim/catalog-console/internal/app/repository"
	"github.com/ikkim/catalog-console/internal/app/service"
	"github.com/ikkim/catalog-console/internal/db"
	"github.com/ikkim/catalog-console/internal/notify"
	"github.com/ikkim/catalog-console/internal/router"
	"github.com/ikkim/catalog-console/internal/scheduler"
	"github.com/ikkim/catalog-console/internal/storage"
	"github.com/ikkim/catalog-console/pkg/catalog"
	"github.com/ikkim/catalog-console/pkg/logger"
	"github.com/ikkim/catalog-console/pkg/redis"
)

const previewRoute = "/api/v1/previews"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Log.Level
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Format == "console",
	})

	logger.Info("Starting catalog console server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
		"catalog_url": cfg.Catalog.BaseURL,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalogClient, err := catalog.NewClient(catalog.Config{
		BaseURL: cfg.Catalog.BaseURL,
		Token:   cfg.Catalog.Token,
		Timeout: cfg.Catalog.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to create catalog client", err)
	}

	// Submission log (optional)
	var submissionRepo repository.SubmissionRepository
	if cfg.Database.Enabled {
		if err := db.Initialize(&cfg.Database); err != nil {
			logger.Fatal("Failed to initialize database", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", err)
			}
		}()
		if err := db.Migrate(); err != nil {
			logger.Fatal("Failed to run migrations", err)
		}
		submissionRepo = repository.NewSubmissionRepository(db.GetDB())
	} else {
		logger.Warn("Database disabled, submission log is off", nil)
	}

	// Submit guard: Redis across instances, in-process otherwise
	var guard service.SubmitGuard = service.NewLocalGuard()
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		guard = redis.NewSubmitGuard(redis.GetClient(), cfg.Redis.LockTTL)
	}

	// Preview store
	var previews storage.PreviewStore
	var memoryPreviews *storage.MemoryPreviewStore
	if cfg.S3.Enabled {
		previews = storage.NewS3PreviewStore(ctx, storage.S3Config{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Prefix:          cfg.S3.Prefix,
			URLExpiry:       cfg.S3.URLExpiry,
		})
		logger.Info("Using S3 preview store", map[string]interface{}{
			"bucket": cfg.S3.Bucket,
			"prefix": cfg.S3.Prefix,
		})
	} else {
		memoryPreviews = storage.NewMemoryPreviewStore(previewRoute)
		previews = memoryPreviews
	}

	hub := notify.NewHub()
	go hub.Run(ctx)

	// Initialize services
	submissionService := service.NewSubmissionService(submissionRepo)
	lookupService := service.NewLookupService(catalogClient)
	editorService := service.NewEditorService(catalogClient, previews, hub, guard, submissionService, service.EditorConfig{
		ImageLimit:     cfg.Session.ImageLimit,
		MaxUploadBytes: cfg.Session.MaxUploadBytes,
	})

	// Initialize controllers
	sessionController := controller.NewSessionController(editorService, cfg.Session.MaxUploadBytes)
	composerController := controller.NewComposerController(editorService, cfg.Session.MaxUploadBytes)
	catalogController := controller.NewCatalogController(lookupService, submissionService)
	noticeController := controller.NewNoticeController(hub, editorService, memoryPreviews, cfg.CORS.AllowedOrigins)

	// Setup router
	r := router.NewRouter(
		sessionController,
		composerController,
		catalogController,
		noticeController,
		cfg,
	)
	engine := r.Setup()

	sweeper := scheduler.NewSessionSweeper(editorService, cfg.Session.SweepSpec, cfg.Session.IdleTTL)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start session sweeper", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	sweeper.Stop()
	editorService.Shutdown(shutdownCtx)
	cancel()

	logger.Info("Server stopped successfully")
}
