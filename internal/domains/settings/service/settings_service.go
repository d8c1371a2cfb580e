package service

import (
	"context"
	"regexp"
	"time"

	"viewtech-backend/internal/domains/settings"
	"viewtech-backend/pkg/cache"
	"viewtech-backend/pkg/logger"
)

const (
	cacheKeyAll = "settings:all"
	cacheTTL    = 15 * time.Minute
)

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

type settingsService struct {
	repo  settings.Repository
	cache cache.Cache
}

func NewSettingsService(repo settings.Repository, c cache.Cache) settings.Service {
	return &settingsService{repo: repo, cache: c}
}

func (s *settingsService) All(ctx context.Context) (map[string]string, error) {
	var cached map[string]string
	found, err := s.cache.Get(ctx, cacheKeyAll, &cached)
	if err != nil {
		logger.Error("settings cache read failed", err)
	}
	if found {
		return cached, nil
	}

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	all := make(map[string]string, len(items))
	for _, item := range items {
		all[item.Key] = item.Value
	}

	if err := s.cache.Set(ctx, cacheKeyAll, all, cacheTTL); err != nil {
		logger.Error("settings cache write failed", err)
	}

	return all, nil
}

func (s *settingsService) Get(ctx context.Context, key string) (*settings.Setting, error) {
	if !keyPattern.MatchString(key) {
		return nil, settings.ErrInvalidKey
	}
	return s.repo.Get(ctx, key)
}

func (s *settingsService) Upsert(ctx context.Context, key string, req *settings.UpsertSettingReq) (*settings.Setting, error) {
	if !keyPattern.MatchString(key) {
		return nil, settings.ErrInvalidKey
	}

	setting, err := s.repo.Upsert(ctx, key, req.Value)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, cacheKeyAll); err != nil {
		logger.Error("settings cache invalidation failed", err)
	}

	return setting, nil
}

func (s *settingsService) Delete(ctx context.Context, key string) error {
	if !keyPattern.MatchString(key) {
		return settings.ErrInvalidKey
	}

	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, cacheKeyAll); err != nil {
		logger.Error("settings cache invalidation failed", err)
	}

	return nil
}
