package message

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
	Create(ctx context.Context, req *CreateMessageReq) (*MessageResp, error)
	// Get marks an unread message as read before returning it.
	Get(ctx context.Context, id uuid.UUID) (*MessageResp, error)
	List(ctx context.Context, q ListQuery) ([]MessageResp, pagination.Envelope, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateStatusReq) (*MessageResp, error)
	// Respond stores the response text and enqueues the reply email.
	Respond(ctx context.Context, id uuid.UUID, req *RespondReq) (*MessageResp, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
