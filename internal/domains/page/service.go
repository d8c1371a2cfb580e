package page

import (
	"context"

	"github.com/google/uuid"

	"viewtech-backend/internal/shared/pagination"
)

type ListQuery struct {
	Status string
	Page   pagination.Params
}

type Service interface {
	Create(ctx context.Context, req *CreatePageReq, actor uuid.UUID) (*PageResp, error)
	GetByIdentifier(ctx context.Context, identifier string) (*PageResp, error)
	List(ctx context.Context, q ListQuery) ([]PageResp, pagination.Envelope, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdatePageReq, actor uuid.UUID) (*PageResp, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
