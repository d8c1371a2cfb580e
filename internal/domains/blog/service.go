package blog

import (
	"context"

	"github.com/google/uuid"

	"viewtech-backend/internal/shared/pagination"
)

type ListQuery struct {
	Status       string
	Featured     string
	CategorySlug string
	TagSlug      string
	Page         pagination.Params
}

type Service interface {
	Create(ctx context.Context, req *CreatePostReq, actor uuid.UUID) (*PostResp, error)
	// GetByIdentifier resolves a UUID-shaped identifier by id and anything
	// else by slug.
	GetByIdentifier(ctx context.Context, identifier string) (*PostResp, error)
	List(ctx context.Context, q ListQuery) ([]PostResp, pagination.Envelope, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdatePostReq, actor uuid.UUID) (*PostResp, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
