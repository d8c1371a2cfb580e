package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"viewtech-backend/internal/domains/media"
	"viewtech-backend/internal/infrastructure/storage"
	"viewtech-backend/internal/shared"
	"viewtech-backend/pkg/logger"
)

// ProcessImageHandler downloads an uploaded original, renders the resized
// variants and stores their URLs on the media row.
type ProcessImageHandler struct {
	repo      media.Repository
	storage   storage.ObjectStorage
	processor *storage.ImageProcessor
}

func NewProcessImageHandler(repo media.Repository, objStorage storage.ObjectStorage, processor *storage.ImageProcessor) *ProcessImageHandler {
	return &ProcessImageHandler{repo: repo, storage: objStorage, processor: processor}
}

func (h *ProcessImageHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessMediaImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	id, err := uuid.Parse(payload.MediaID)
	if err != nil {
		return fmt.Errorf("invalid media id %q: %w", payload.MediaID, asynq.SkipRetry)
	}

	m, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, media.ErrMediaNotFound) {
			logger.Info("image processing skipped, media gone", map[string]interface{}{"mediaId": payload.MediaID})
			return nil
		}
		return err
	}

	if !m.IsImage() {
		return fmt.Errorf("media %s is not an image: %w", payload.MediaID, asynq.SkipRetry)
	}

	original, err := h.storage.Download(ctx, m.StorageKey)
	if err != nil {
		return fmt.Errorf("failed to download original: %w", err)
	}

	variants, err := h.processor.ProcessImage(original)
	if err != nil {
		return fmt.Errorf("failed to process image: %v: %w", err, asynq.SkipRetry)
	}

	urls := make(map[string]string, len(variants))
	for name, data := range variants {
		key := m.StoragePrefix() + name + ".jpg"
		url, err := h.storage.Upload(ctx, key, data, "image/jpeg")
		if err != nil {
			return fmt.Errorf("failed to upload %s variant: %w", name, err)
		}
		urls[name] = url
	}

	width, height := 0, 0
	if w, hh, err := h.processor.Dimensions(original); err == nil {
		width, height = w, hh
	}

	if err := h.repo.SetVariants(ctx, id, urls, width, height); err != nil {
		return err
	}

	logger.Info("image variants built", map[string]interface{}{"mediaId": payload.MediaID, "variants": len(urls)})
	return nil
}
