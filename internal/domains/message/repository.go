package message

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Message, error)
	List(ctx context.Context, filter Filter) ([]Message, int, error)
	Create(ctx context.Context, message *Message) (*Message, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	// Respond stores the admin response and flips the status to responded.
	Respond(ctx context.Context, id uuid.UUID, responseText string, respondedAt time.Time) (*Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteRespondedBefore prunes responded messages older than the cutoff
	// and reports how many rows went away.
	DeleteRespondedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
