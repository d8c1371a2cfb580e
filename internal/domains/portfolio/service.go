package portfolio

import (
	"context"

	"github.com/google/uuid"

	"viewtech-backend/internal/shared/pagination"
)

// ListQuery carries raw query-string filters; the service interprets them.
type ListQuery struct {
	Status       string
	Featured     string
	CategorySlug string
	Page         pagination.Params
}

type Service interface {
	Create(ctx context.Context, req *CreateProjectReq, actor uuid.UUID) (*ProjectResp, error)
	GetByIdentifier(ctx context.Context, identifier string) (*ProjectResp, error)
	List(ctx context.Context, q ListQuery) ([]ProjectResp, pagination.Envelope, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateProjectReq, actor uuid.UUID) (*ProjectResp, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
