package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/api"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/config"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/logger"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/service"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	// Pick the artifact sink: filesystem when a directory is configured,
	// in-memory otherwise.
	var artifacts store.ArtifactStore
	if cfg.Artifacts.Dir != "" {
		fsStore, err := store.NewFilesystemStore(cfg.Artifacts.Dir)
		if err != nil {
			appLog.Fatal().Err(err).Msg("failed to open artifact directory")
		}
		artifacts = fsStore
		appLog.Info().Str("dir", cfg.Artifacts.Dir).Msg("artifacts stored on filesystem")
	} else {
		artifacts = store.NewMemoryStore()
		appLog.Info().Msg("artifacts stored in memory")
	}

	sweeper := store.NewRetentionSweeper(artifacts, time.Duration(cfg.Artifacts.TTLHours)*time.Hour, appLog)
	if err := sweeper.Start(); err != nil {
		appLog.Fatal().Err(err).Msg("failed to start retention sweeper")
	}
	defer sweeper.Stop()

	// Create services
	systemService := service.NewSystemService(artifacts)
	runService := service.NewRunService(artifacts, cfg.Upload.PreviewRows, appLog)

	// Create router
	router := api.NewRouter(systemService, runService, cfg, appLog)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLog.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLog.Info().Msg("server exited")
}
