package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/config"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/logger"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "petfriends-api")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting petfriends-api",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.Storage),
	)

	// Assemble storage, cache, publisher and routes
	api, err := server.FromConfig(cfg, log)
	if err != nil {
		log.Fatal("failed to build server", zap.Error(err))
	}
	defer func() { _ = api.Close() }()

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := api.Seed(seedCtx, cfg.SeedUsers); err != nil {
		seedCancel()
		log.Fatal("failed to seed accounts", zap.Error(err))
	}
	seedCancel()

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      api.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down petfriends-api...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("petfriends-api stopped")
}
