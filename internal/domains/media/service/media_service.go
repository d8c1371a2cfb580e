package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"viewtech-backend/internal/domains/media"
	"viewtech-backend/internal/infrastructure/storage"
	"viewtech-backend/internal/shared"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/pkg/logger"
)

// maxUploadSize caps non-image uploads; images are capped by the processor.
const maxUploadSize = 20 * 1024 * 1024

type taskEnqueuer interface {
	Enqueue(taskType string, payload interface{}, opts ...asynq.Option) error
}

type mediaService struct {
	repo      media.Repository
	storage   storage.ObjectStorage
	processor *storage.ImageProcessor
	queue     taskEnqueuer
}

func NewMediaService(repo media.Repository, objStorage storage.ObjectStorage, processor *storage.ImageProcessor, queue taskEnqueuer) media.Service {
	return &mediaService{
		repo:      repo,
		storage:   objStorage,
		processor: processor,
		queue:     queue,
	}
}

func (s *mediaService) Upload(ctx context.Context, fileName, contentType string, data []byte, actor uuid.UUID) (*media.MediaResp, error) {
	if len(data) == 0 {
		return nil, media.ErrInvalidFile
	}

	isImage := strings.HasPrefix(contentType, "image/")
	if isImage {
		if err := s.processor.ValidateImage(data); err != nil {
			return nil, fmt.Errorf("%w: %v", media.ErrInvalidFile, err)
		}
	} else if int64(len(data)) > maxUploadSize {
		return nil, media.ErrFileTooLarge
	}

	m := &media.Media{
		ID:        uuid.New(),
		FileName:  fileName,
		MimeType:  contentType,
		SizeBytes: int64(len(data)),
		Variants:  map[string]string{},
		CreatedAt: time.Now().UTC(),
	}
	if actor != uuid.Nil {
		m.UploadedBy = &actor
	}

	m.StorageKey = m.StoragePrefix() + "original" + strings.ToLower(filepath.Ext(fileName))

	url, err := s.storage.Upload(ctx, m.StorageKey, data, contentType)
	if err != nil {
		return nil, err
	}
	m.URL = url

	if isImage {
		if w, h, err := s.processor.Dimensions(data); err == nil {
			m.Width = &w
			m.Height = &h
		}
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		// best effort: do not leave the object behind when the row failed
		if delErr := s.storage.Delete(ctx, m.StorageKey); delErr != nil {
			logger.Error("failed to remove orphaned upload", delErr)
		}
		return nil, err
	}

	if isImage {
		payload := shared.ProcessMediaImagePayload{MediaID: created.ID.String()}
		if err := s.queue.Enqueue(shared.TypeProcessMediaImage, payload, asynq.Queue("default"), asynq.MaxRetry(3)); err != nil {
			logger.Error("failed to enqueue image processing", err)
		}
	}

	return media.MediaToResp(created), nil
}

func (s *mediaService) Get(ctx context.Context, id uuid.UUID) (*media.MediaResp, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return media.MediaToResp(m), nil
}

func (s *mediaService) List(ctx context.Context, q media.ListQuery) ([]media.MediaResp, pagination.Envelope, error) {
	filter := media.Filter{
		MimePrefix: q.MimePrefix,
		Limit:      q.Page.Limit,
		Offset:     q.Page.Offset(),
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pagination.Envelope{}, err
	}

	return media.MediaListToResp(items), pagination.NewEnvelope(q.Page, total), nil
}

func (s *mediaService) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.DeleteByPrefix(ctx, m.StoragePrefix()); err != nil {
		// the orphan sweep picks these up later
		logger.Error("failed to delete media objects", err)
	}

	return nil
}
