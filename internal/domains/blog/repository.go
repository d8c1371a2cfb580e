package blog

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	// List returns the matching page plus the total count ignoring
	// limit/offset.
	List(ctx context.Context, filter *Filter) ([]Post, int, error)
	Create(ctx context.Context, post *Post, categoryIDs, tagIDs []uuid.UUID) (*Post, error)
	// Update persists the post and, when the id slices are non-nil, replaces
	// the category/tag associations.
	Update(ctx context.Context, post *Post, categoryIDs, tagIDs *[]uuid.UUID) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SlugExists reports whether slug is taken by a post other than excludeID
	// (pass uuid.Nil on create).
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}
