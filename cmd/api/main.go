// Command api is the Comeback Scout API server.
//
// Usage:
//
//	scout-api
//	STORAGE_DRIVER=sqlite API_PORT=8080 scout-api

// @title Comeback Scout API
// @version 1.0.0
// @description Simulated live matches for superteams, comeback probability scoring and deduplicated comeback alerts.
// @host localhost:8000
// @BasePath /api
// @schemes http https
// @contact.name Comeback Scout
// @license.name MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/comeback-scout/internal/alerts"
	"github.com/albapepper/comeback-scout/internal/api"
	"github.com/albapepper/comeback-scout/internal/cache"
	"github.com/albapepper/comeback-scout/internal/config"
	"github.com/albapepper/comeback-scout/internal/logging"
	"github.com/albapepper/comeback-scout/internal/maintenance"
	"github.com/albapepper/comeback-scout/internal/notifications"
	"github.com/albapepper/comeback-scout/internal/roster"
	"github.com/albapepper/comeback-scout/internal/simulator"

	_ "github.com/albapepper/comeback-scout/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Open alert storage
	logger.Info("Opening alert storage...", "driver", cfg.StorageDriver)
	store, closeStore, err := alerts.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open alert storage", "error", err)
		os.Exit(1)
	}
	defer closeStore()
	if err := store.Init(ctx); err != nil {
		logger.Error("Failed to initialize alert storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Alert storage ready", "driver", cfg.StorageDriver)

	// Superteam roster
	rs, err := roster.Load(cfg.RosterFile)
	if err != nil {
		logger.Error("Failed to load roster", "file", cfg.RosterFile, "error", err)
		os.Exit(1)
	}
	gen := simulator.New(rs, simulator.WithBatchSize(cfg.MatchBatchSize))
	logger.Info("Simulator ready", "superteams", len(rs.Superteams), "batch", gen.BatchSize())

	// Initialize cache
	appCache := cache.New(ctx, cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Alert fan-out (Kafka and/or Telegram)
	senders, err := notifications.FromConfig(cfg)
	if err != nil {
		logger.Error("Failed to configure notification senders", "error", err)
		os.Exit(1)
	}
	var managerOpts []alerts.ManagerOption
	if dispatcher := notifications.NewDispatcher(logger, senders...); dispatcher != nil {
		go dispatcher.StartWorker(ctx)
		managerOpts = append(managerOpts, alerts.WithNotifier(dispatcher))
	} else {
		logger.Info("Notification dispatch worker disabled (no KAFKA_BROKERS or TELEGRAM_BOT_TOKEN)")
	}
	manager := alerts.NewManager(store, logger, managerOpts...)

	// Background comeback checks
	go maintenance.Start(ctx, gen, manager, maintenance.Config{CheckInterval: cfg.AutoCheckInterval}, logger)

	// Create router
	router := api.NewRouter(api.Deps{
		Matches: gen,
		Alerts:  manager,
		Roster:  rs,
		Cache:   appCache,
		Logger:  logger,
	}, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Comeback Scout API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			cancel()
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
