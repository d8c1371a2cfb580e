package taxonomy

import (
	"context"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context, limit, offset int) ([]Category, int, error)
	Create(ctx context.Context, category *Category) (*Category, error)
	Update(ctx context.Context, category *Category) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

type TagRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	GetBySlug(ctx context.Context, slug string) (*Tag, error)
	List(ctx context.Context, limit, offset int) ([]Tag, int, error)
	Create(ctx context.Context, tag *Tag) (*Tag, error)
	Update(ctx context.Context, tag *Tag) (*Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}
