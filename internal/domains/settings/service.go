package settings

import "context"

type Service interface {
	// All returns every setting as a key→value map, cached for a short TTL.
	All(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (*Setting, error)
	// Upsert writes the value and invalidates the cache.
	Upsert(ctx context.Context, key string, req *UpsertSettingReq) (*Setting, error)
	Delete(ctx context.Context, key string) error
}
