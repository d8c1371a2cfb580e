package main

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"viewtech-backend/internal/config"
	mediajob "viewtech-backend/internal/domains/media/job"
	mediarepo "viewtech-backend/internal/domains/media/repository"
	messagejob "viewtech-backend/internal/domains/message/job"
	messagerepo "viewtech-backend/internal/domains/message/repository"
	"viewtech-backend/internal/infrastructure/database"
	"viewtech-backend/internal/infrastructure/email"
	"viewtech-backend/internal/infrastructure/storage"
	"viewtech-backend/internal/shared"
	"viewtech-backend/pkg/logger"
)

// Worker owns the asynq server and the infrastructure its task handlers use.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	db     *database.PostgresDB
}

func NewWorker(ctx context.Context, cfg *config.Config) (*Worker, error) {
	db := database.NewPostgresDB(&cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("object storage init failed: %w", err)
	}

	processor := storage.NewImageProcessor()
	emailService := email.NewSMTPEmailService(cfg.SMTP)

	messageRepo := messagerepo.NewPostgresRepository(db.Pool)
	mediaRepo := mediarepo.NewPostgresRepository(db.Pool)

	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"high":    6,
				"default": 3,
				"low":     1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error(fmt.Sprintf("task %s failed", task.Type()), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(shared.TypeSendMessageResponse, messagejob.NewSendResponseHandler(messageRepo, emailService).Handle)
	mux.HandleFunc(shared.TypeCleanupOldMessages, messagejob.NewCleanupHandler(messageRepo).Handle)
	mux.HandleFunc(shared.TypeProcessMediaImage, mediajob.NewProcessImageHandler(mediaRepo, minioStorage, processor).Handle)
	mux.HandleFunc(shared.TypeCleanupOrphanMedia, mediajob.NewCleanupOrphansHandler(mediaRepo, minioStorage).Handle)

	return &Worker{server: server, mux: mux, db: db}, nil
}

func (w *Worker) Start() error {
	return w.server.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) Cleanup() {
	w.db.Close()
}
