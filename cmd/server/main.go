package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/jpereira/homecheck/api"
	migrations "github.com/jpereira/homecheck/db"
	"github.com/jpereira/homecheck/internal/config"
	"github.com/jpereira/homecheck/internal/db"
	"github.com/jpereira/homecheck/internal/jobs"
	"github.com/jpereira/homecheck/internal/repository/sqlite"
	"github.com/jpereira/homecheck/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)

	log.Printf("Starting homecheck server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open database connection and apply migrations
	database, err := db.New(ctx, cfg.DatabasePath, logger)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, database, migrations.Migrations); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	// Object storage for inspection photos
	store, err := storage.NewS3Store(&cfg.Storage, logger)
	if err != nil {
		log.Fatalf("Failed to configure object storage: %v", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		log.Fatalf("Failed to ensure storage bucket: %v", err)
	}

	// Background reconciliation of image markers stranded by interrupted
	// uploads
	repo := sqlite.New(database, logger)
	reconciler := jobs.NewReconciler(repo, store, cfg.Worker.PendingCutoff, logger)
	handlers := map[string]jobs.Handler{
		jobs.ReconcileImagesJob: reconciler.Handler(),
	}
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	pool := jobs.NewWorkerPool(repo, handlers, logger, cfg.Worker.Count)
	pool.Start(workerCtx)
	pool.StartPeriodic(workerCtx, jobs.ReconcileImagesJob, cfg.Worker.ReconcileEvery, cfg.Worker.JobMaxAttempts)

	handler := api.SetupRoutes(cfg, version, buildTime, database, store)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	cancelWorkers()
	pool.Stop()

	// Close database connection
	if err := database.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
