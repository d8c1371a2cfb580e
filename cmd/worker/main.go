package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"viewtech-backend/internal/config"
	"viewtech-backend/internal/infrastructure/queue"
	"viewtech-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	worker, err := NewWorker(ctx, cfg)
	cancel()
	if err != nil {
		logger.Error("failed to initialise worker", err)
		os.Exit(1)
	}
	defer worker.Cleanup()

	scheduler := queue.NewScheduler(cfg.Redis.Host, cfg.Jobs)
	if err := scheduler.RegisterCleanupJobs(); err != nil {
		logger.Error("failed to register scheduled jobs", err)
		os.Exit(1)
	}

	go func() {
		if err := scheduler.Start(); err != nil {
			logger.Error("scheduler stopped", err)
			os.Exit(1)
		}
	}()

	go func() {
		if err := worker.Start(); err != nil {
			logger.Error("worker stopped", err)
			os.Exit(1)
		}
	}()

	logger.Info("worker started", map[string]interface{}{"env": cfg.App.Environment})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker", nil)
	scheduler.Shutdown()
	worker.Shutdown()
	logger.Info("worker exited", nil)
}
