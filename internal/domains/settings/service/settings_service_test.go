package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewtech-backend/internal/domains/settings"
)

type fakeRepo struct {
	values map[string]string

	getAllCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{values: map[string]string{}}
}

func (f *fakeRepo) GetAll(ctx context.Context) ([]settings.Setting, error) {
	f.getAllCalls++
	out := make([]settings.Setting, 0, len(f.values))
	for k, v := range f.values {
		out = append(out, settings.Setting{Key: k, Value: v, UpdatedAt: time.Now().UTC()})
	}
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, key string) (*settings.Setting, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, settings.ErrSettingNotFound
	}
	return &settings.Setting{Key: key, Value: v, UpdatedAt: time.Now().UTC()}, nil
}

func (f *fakeRepo) Upsert(ctx context.Context, key, value string) (*settings.Setting, error) {
	f.values[key] = value
	return &settings.Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}, nil
}

func (f *fakeRepo) Delete(ctx context.Context, key string) error {
	if _, ok := f.values[key]; !ok {
		return settings.ErrSettingNotFound
	}
	delete(f.values, key)
	return nil
}

// memoryCache mimics the redis layer: values round-trip through JSON and a
// miss is (false, nil).
type memoryCache struct {
	entries map[string][]byte

	sets    int
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.deletes++
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

func TestAllPopulatesCache(t *testing.T) {
	repo := newFakeRepo()
	repo.values["site.title"] = "ViewTech Security"
	c := newMemoryCache()
	svc := NewSettingsService(repo, c)

	first, err := svc.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ViewTech Security", first["site.title"])
	assert.Equal(t, 1, repo.getAllCalls)
	assert.Equal(t, 1, c.sets)

	// second read is served from cache
	second, err := svc.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.getAllCalls)
}

func TestUpsertInvalidatesCache(t *testing.T) {
	repo := newFakeRepo()
	c := newMemoryCache()
	svc := NewSettingsService(repo, c)

	_, err := svc.All(context.Background())
	require.NoError(t, err)

	_, err = svc.Upsert(context.Background(), "contact.phone", &settings.UpsertSettingReq{Value: "+84 123 456 789"})
	require.NoError(t, err)

	all, err := svc.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "+84 123 456 789", all["contact.phone"])
	// upsert dropped the cached map, so All hit the repo again
	assert.Equal(t, 2, repo.getAllCalls)
}

func TestDeleteInvalidatesCache(t *testing.T) {
	repo := newFakeRepo()
	repo.values["old.key"] = "stale"
	c := newMemoryCache()
	svc := NewSettingsService(repo, c)

	_, err := svc.All(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "old.key"))

	all, err := svc.All(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, all, "old.key")
}

func TestKeyValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSettingsService(repo, newMemoryCache())

	for _, key := range []string{"", "has space", "semi;colon", "path/slash"} {
		_, err := svc.Get(context.Background(), key)
		assert.ErrorIs(t, err, settings.ErrInvalidKey, key)

		_, err = svc.Upsert(context.Background(), key, &settings.UpsertSettingReq{Value: "x"})
		assert.ErrorIs(t, err, settings.ErrInvalidKey, key)

		assert.ErrorIs(t, svc.Delete(context.Background(), key), settings.ErrInvalidKey, key)
	}

	// dots, dashes and underscores are all fine
	_, err := svc.Upsert(context.Background(), "site.meta_description-v2", &settings.UpsertSettingReq{Value: "ok"})
	assert.NoError(t, err)
}

func TestGetMissingKey(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSettingsService(repo, newMemoryCache())

	_, err := svc.Get(context.Background(), "no.such.key")
	assert.ErrorIs(t, err, settings.ErrSettingNotFound)
}
