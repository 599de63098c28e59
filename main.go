package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"miniwx/internal/config"
	"miniwx/internal/logger"
	"miniwx/internal/server"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	configureLogging(cfg)
	log := logger.GetGlobalLogger().WithComponent("main")

	log.Info("Starting Mini METARs service", map[string]interface{}{
		"port":        cfg.Port,
		"version":     config.GetVersion(),
		"environment": cfg.Environment,
	})

	// Create server
	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to create server", err)
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": httpServer.Addr})
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", err)
	}

	log.Info("Server stopped")
}

// configureLogging applies the configured level and format to the global
// logger; unknown values keep the environment-derived defaults
func configureLogging(cfg *config.Config) {
	log := logger.GetGlobalLogger()

	if level := logger.ParseLogLevel(cfg.LogLevel); level != -1 {
		log.SetLevel(level)
	}
	if format := logger.ParseLogFormat(cfg.LogFormat); format != -1 {
		log.SetFormat(format)
	}
}
