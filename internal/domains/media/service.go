package media

import (
	"context"

	"github.com/google/uuid"

	"viewtech-backend/internal/shared/pagination"
)

type ListQuery struct {
	MimePrefix string
	Page       pagination.Params
}

type Service interface {
	// Upload stores the original object, records the media row and, for
	// images, enqueues variant processing.
	Upload(ctx context.Context, fileName, contentType string, data []byte, actor uuid.UUID) (*MediaResp, error)
	Get(ctx context.Context, id uuid.UUID) (*MediaResp, error)
	List(ctx context.Context, q ListQuery) ([]MediaResp, pagination.Envelope, error)
	// Delete removes the row and every stored object under the media prefix.
	Delete(ctx context.Context, id uuid.UUID) error
}
