package media

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Media, error)
	List(ctx context.Context, filter Filter) ([]Media, int, error)
	Create(ctx context.Context, media *Media) (*Media, error)
	// SetVariants stores the variant URLs and dimensions the worker produced.
	SetVariants(ctx context.Context, id uuid.UUID, variants map[string]string, width, height int) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
