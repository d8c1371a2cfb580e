package portfolio

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	List(ctx context.Context, filter Filter) ([]Project, int, error)
	Create(ctx context.Context, project *Project, categoryIDs []uuid.UUID) (*Project, error)
	// Update replaces category associations only when categoryIDs is non-nil.
	Update(ctx context.Context, project *Project, categoryIDs *[]uuid.UUID) (*Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}
