package taxonomy

import (
	"context"

	"github.com/google/uuid"

	"viewtech-backend/internal/shared/pagination"
)

type Service interface {
	CreateCategory(ctx context.Context, req *CreateCategoryReq) (*CategoryResp, error)
	GetCategoryByIdentifier(ctx context.Context, identifier string) (*CategoryResp, error)
	ListCategories(ctx context.Context, page pagination.Params) ([]CategoryResp, pagination.Envelope, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *UpdateCategoryReq) (*CategoryResp, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateTag(ctx context.Context, req *CreateTagReq) (*TagResp, error)
	GetTagByIdentifier(ctx context.Context, identifier string) (*TagResp, error)
	ListTags(ctx context.Context, page pagination.Params) ([]TagResp, pagination.Envelope, error)
	UpdateTag(ctx context.Context, id uuid.UUID, req *UpdateTagReq) (*TagResp, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
}
