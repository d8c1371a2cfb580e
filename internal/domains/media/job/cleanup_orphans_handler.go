package job

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"viewtech-backend/internal/domains/media"
	"viewtech-backend/internal/infrastructure/storage"
	"viewtech-backend/pkg/logger"
)

// CleanupOrphansHandler sweeps storage prefixes whose media row no longer
// exists (deletes that lost the race with the API, failed uploads).
type CleanupOrphansHandler struct {
	repo    media.Repository
	storage storage.ObjectStorage
}

func NewCleanupOrphansHandler(repo media.Repository, objStorage storage.ObjectStorage) *CleanupOrphansHandler {
	return &CleanupOrphansHandler{repo: repo, storage: objStorage}
}

func (h *CleanupOrphansHandler) Handle(ctx context.Context, task *asynq.Task) error {
	keys, err := h.storage.ListKeys(ctx, "media/")
	if err != nil {
		return err
	}

	seen := map[uuid.UUID]bool{}
	removed := 0

	for _, key := range keys {
		// keys look like media/<uuid>/original.jpg
		parts := strings.Split(key, "/")
		if len(parts) < 3 {
			continue
		}
		id, err := uuid.Parse(parts[1])
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true

		exists, err := h.repo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		if err := h.storage.DeleteByPrefix(ctx, "media/"+id.String()+"/"); err != nil {
			return err
		}
		removed++
	}

	logger.Info("orphan media sweep finished", map[string]interface{}{
		"prefixesChecked": len(seen),
		"removed":         removed,
	})
	return nil
}
