package user

import (
	"context"

	"github.com/google/uuid"

	"viewtech-backend/internal/shared/pagination"
)

type Service interface {
	// Login verifies credentials and issues an access/refresh token pair.
	// Disabled accounts cannot log in.
	Login(ctx context.Context, req *LoginReq) (*AuthResp, error)
	// Refresh trades a valid refresh token for a new token pair.
	Refresh(ctx context.Context, req *RefreshReq) (*AuthResp, error)
	// Current returns the account behind a validated access token.
	Current(ctx context.Context, id uuid.UUID) (*UserResp, error)

	CreateUser(ctx context.Context, req *CreateUserReq) (*UserResp, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserResp, error)
	ListUsers(ctx context.Context, page pagination.Params) ([]UserResp, pagination.Envelope, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *UpdateUserReq) (*UserResp, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
