// cmd/api/main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"skraper/internal/app"
	"skraper/internal/config"
	"skraper/internal/logger"
	"skraper/internal/metrics"
	"skraper/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	metrics.Initialize()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize dependencies
	application, err := app.New(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer application.Close()

	if !application.Invoker.Available(context.Background()) {
		logger.Log.Warn("Scraper tool not available",
			logger.WithBackend(application.Invoker.Name()),
			zap.String("hint", "install the tool, set SCRAPER_PATH, or enable SCRAPER_FALLBACK_FIXTURE"),
		)
	}

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, server.Dependencies{
		Scraper:       application.Pipeline,
		Detector:      application.Detector,
		Invoker:       application.Invoker,
		Bus:           application.Bus,
		EventsSubject: application.Publisher.Wildcard(),
	})

	// Start HTTP server
	go func() {
		logger.Log.Info("Starting HTTP server",
			zap.String("addr", httpServer.Addr()),
			logger.WithBackend(application.Invoker.Name()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Log.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Log.Info("Shutdown complete")
}
