package settings

import "context"

type Repository interface {
	GetAll(ctx context.Context) ([]Setting, error)
	Get(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, key, value string) (*Setting, error)
	Delete(ctx context.Context, key string) error
}
