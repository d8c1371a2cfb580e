package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"viewtech-backend/internal/config"
	"viewtech-backend/internal/shared"
	"viewtech-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddr string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterCleanupJobs wires the periodic maintenance tasks.
func (s *Scheduler) RegisterCleanupJobs() error {
	if err := s.registerCleanupOldMessagesJob(); err != nil {
		return err
	}

	if err := s.registerCleanupOrphanMediaJob(); err != nil {
		return err
	}

	return nil
}

func (s *Scheduler) registerCleanupOldMessagesJob() error {
	payload, err := json.Marshal(shared.CleanupOldMessagesPayload{
		OlderThanDays: s.jobConfig.MessageRetentionDays,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cleanup payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeCleanupOldMessages, payload)
	entryID, err := s.scheduler.Register(s.jobConfig.CleanupCron, task, asynq.Queue("low"))
	if err != nil {
		return fmt.Errorf("failed to register message cleanup job: %w", err)
	}

	logger.Info("Registered message cleanup job", map[string]interface{}{
		"entry_id": entryID,
		"cron":     s.jobConfig.CleanupCron,
	})
	return nil
}

func (s *Scheduler) registerCleanupOrphanMediaJob() error {
	payload, err := json.Marshal(shared.CleanupOrphanMediaPayload{})
	if err != nil {
		return fmt.Errorf("failed to marshal cleanup payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeCleanupOrphanMedia, payload)
	entryID, err := s.scheduler.Register(s.jobConfig.CleanupCron, task, asynq.Queue("low"))
	if err != nil {
		return fmt.Errorf("failed to register media cleanup job: %w", err)
	}

	logger.Info("Registered media cleanup job", map[string]interface{}{
		"entry_id": entryID,
		"cron":     s.jobConfig.CleanupCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
