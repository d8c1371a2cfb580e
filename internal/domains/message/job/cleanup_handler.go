package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"viewtech-backend/internal/domains/message"
	"viewtech-backend/internal/shared"
	"viewtech-backend/pkg/logger"
)

// CleanupHandler prunes responded contact messages past the retention window.
type CleanupHandler struct {
	repo message.Repository
}

func NewCleanupHandler(repo message.Repository) *CleanupHandler {
	return &CleanupHandler{repo: repo}
}

func (h *CleanupHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload shared.CleanupOldMessagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if payload.OlderThanDays <= 0 {
		return fmt.Errorf("invalid retention %d days: %w", payload.OlderThanDays, asynq.SkipRetry)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -payload.OlderThanDays)
	deleted, err := h.repo.DeleteRespondedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	logger.Info("message cleanup finished", map[string]interface{}{
		"deleted":       deleted,
		"olderThanDays": payload.OlderThanDays,
	})
	return nil
}
