package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"room-lease-backend/config"
	"room-lease-backend/internal/api"
	"room-lease-backend/internal/audit"
	"room-lease-backend/internal/db"
	"room-lease-backend/internal/lease"
	"room-lease-backend/internal/store"
	"room-lease-backend/internal/sweeper"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "room-lease-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// Audit recorder drains state-change records in the background.
	recorder := audit.NewRecorder(cfg.AuditPool.Size, audit.NewGormSink(gormDB))
	recorder.Start(ctx)

	detector := lease.NewConflictDetector(appStore)
	registry := lease.NewRoomRegistry(appStore)
	lifecycle := lease.NewLifecycle(appStore, detector, registry, recorder)

	// Expiration sweeper runs on its configured schedule.
	sweep, err := sweeper.New(&cfg.Sweeper, lifecycle)
	if err != nil {
		logger.Fatalf("failed to initialize sweeper: %v", err)
	}
	if err := sweep.Start(ctx); err != nil {
		logger.Fatalf("failed to start sweeper: %v", err)
	}
	defer sweep.Stop()

	// Initialize router
	router := api.NewRouter(&cfg.Server, appStore, lifecycle, registry)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
