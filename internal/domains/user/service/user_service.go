package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"viewtech-backend/internal/domains/user"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/pkg/jwt"
	"viewtech-backend/pkg/logger"
)

type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{repo: repo, jwtManager: jwtManager}
}

func (s *userService) Login(ctx context.Context, req *user.LoginReq) (*user.AuthResp, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if err == user.ErrUserNotFound {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if u.Status == user.StatusDisabled {
		return nil, user.ErrAccountDisabled
	}

	return s.issueTokens(u)
}

func (s *userService) Refresh(ctx context.Context, req *user.RefreshReq) (*user.AuthResp, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == user.ErrUserNotFound {
			return nil, user.ErrInvalidToken
		}
		return nil, err
	}

	if u.Status == user.StatusDisabled {
		return nil, user.ErrAccountDisabled
	}

	return s.issueTokens(u)
}

func (s *userService) issueTokens(u *user.User) (*user.AuthResp, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, string(u.Role))
	if err != nil {
		logger.Error("failed to sign access token", err)
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		logger.Error("failed to sign refresh token", err)
		return nil, err
	}

	return &user.AuthResp{
		User:         *user.UserToResp(u),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.AccessTokenExpiry().Seconds()),
	}, nil
}

func (s *userService) Current(ctx context.Context, id uuid.UUID) (*user.UserResp, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.UserToResp(u), nil
}

func (s *userService) CreateUser(ctx context.Context, req *user.CreateUserReq) (*user.UserResp, error) {
	role := user.RoleEditor
	if req.Role != "" {
		role = user.Role(req.Role)
		if !role.Valid() {
			return nil, user.ErrInvalidRole
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
		Status:       user.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	return user.UserToResp(created), nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*user.UserResp, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.UserToResp(u), nil
}

func (s *userService) ListUsers(ctx context.Context, page pagination.Params) ([]user.UserResp, pagination.Envelope, error) {
	users, total, err := s.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Envelope{}, err
	}
	return user.UsersToResp(users), pagination.NewEnvelope(page, total), nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req *user.UpdateUserReq) (*user.UserResp, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = string(hash)
	}
	if req.Role != nil {
		role := user.Role(*req.Role)
		if !role.Valid() {
			return nil, user.ErrInvalidRole
		}
		existing.Role = role
	}
	if req.Status != nil {
		status := user.Status(*req.Status)
		if !status.Valid() {
			return nil, user.ErrInvalidStatus
		}
		existing.Status = status
	}

	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	return user.UserToResp(updated), nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
