package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"viewtech-backend/internal/config"
	"viewtech-backend/pkg/container"
	"viewtech-backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	c, err := container.New(ctx, cfg)
	cancel()
	if err != nil {
		logger.Error("failed to initialise application", err)
		os.Exit(1)
	}
	defer c.Cleanup()

	server := NewServer(c)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("server stopped", err)
			os.Exit(1)
		}
	}()

	logger.Info("API server started", map[string]interface{}{
		"name": cfg.App.Name,
		"port": cfg.App.Port,
		"env":  cfg.App.Environment,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", err)
	}

	logger.Info("server exited", nil)
}
