package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"viewtech-backend/internal/domains/user"
	"viewtech-backend/internal/shared/pagination"
	"viewtech-backend/pkg/jwt"
)

type fakeRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uuid.UUID]*user.User{}}
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeRepo) List(ctx context.Context, limit, offset int) ([]user.User, int, error) {
	out := make([]user.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, user.ErrEmailTaken
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return u, nil
}

func (f *fakeRepo) Update(ctx context.Context, u *user.User) (*user.User, error) {
	if _, ok := f.users[u.ID]; !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return u, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func testManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 15, 168)
}

func seedUser(f *fakeRepo, email, password string, status user.Status) *user.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users[u.ID] = u
	return u
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo, "admin@viewtech.vn", "correct-horse", user.StatusActive)
	svc := NewUserService(repo, testManager())

	resp, err := svc.Login(context.Background(), &user.LoginReq{
		Email:    "admin@viewtech.vn",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), resp.ExpiresIn)
	assert.Equal(t, "admin@viewtech.vn", resp.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo, "admin@viewtech.vn", "correct-horse", user.StatusActive)
	svc := NewUserService(repo, testManager())

	_, err := svc.Login(context.Background(), &user.LoginReq{
		Email:    "admin@viewtech.vn",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, testManager())

	_, err := svc.Login(context.Background(), &user.LoginReq{
		Email:    "nobody@viewtech.vn",
		Password: "whatever",
	})

	// unknown email and wrong password are indistinguishable to the caller
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo, "gone@viewtech.vn", "correct-horse", user.StatusDisabled)
	svc := NewUserService(repo, testManager())

	_, err := svc.Login(context.Background(), &user.LoginReq{
		Email:    "gone@viewtech.vn",
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, user.ErrAccountDisabled)
}

func TestRefreshRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo, "admin@viewtech.vn", "correct-horse", user.StatusActive)
	svc := NewUserService(repo, testManager())

	login, err := svc.Login(context.Background(), &user.LoginReq{
		Email:    "admin@viewtech.vn",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), &user.RefreshReq{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo, "admin@viewtech.vn", "correct-horse", user.StatusActive)
	svc := NewUserService(repo, testManager())

	login, err := svc.Login(context.Background(), &user.LoginReq{
		Email:    "admin@viewtech.vn",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), &user.RefreshReq{
		RefreshToken: login.AccessToken,
	})
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestRefreshGarbageToken(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, testManager())

	_, err := svc.Refresh(context.Background(), &user.RefreshReq{RefreshToken: "not-a-jwt"})
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestRefreshDeletedUser(t *testing.T) {
	repo := newFakeRepo()
	u := seedUser(repo, "admin@viewtech.vn", "correct-horse", user.StatusActive)
	svc := NewUserService(repo, testManager())

	login, err := svc.Login(context.Background(), &user.LoginReq{
		Email:    "admin@viewtech.vn",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	delete(repo.users, u.ID)

	_, err = svc.Refresh(context.Background(), &user.RefreshReq{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestCreateUserDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, testManager())

	resp, err := svc.CreateUser(context.Background(), &user.CreateUserReq{
		Name:     "New Editor",
		Email:    "  Editor@ViewTech.VN ",
		Password: "long-enough-password",
	})

	require.NoError(t, err)
	assert.Equal(t, user.RoleEditor, resp.Role)
	assert.Equal(t, user.StatusActive, resp.Status)
	assert.Equal(t, "editor@viewtech.vn", resp.Email)

	stored := repo.users[resp.ID]
	assert.NotEqual(t, "long-enough-password", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("long-enough-password")))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo, "editor@viewtech.vn", "x", user.StatusActive)
	svc := NewUserService(repo, testManager())

	_, err := svc.CreateUser(context.Background(), &user.CreateUserReq{
		Name:     "Copycat",
		Email:    "EDITOR@viewtech.vn",
		Password: "long-enough-password",
	})

	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestCreateUserInvalidRole(t *testing.T) {
	repo := newFakeRepo()
	svc := NewUserService(repo, testManager())

	_, err := svc.CreateUser(context.Background(), &user.CreateUserReq{
		Name:     "Root",
		Email:    "root@viewtech.vn",
		Password: "long-enough-password",
		Role:     "superuser",
	})

	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestUpdateUserPartial(t *testing.T) {
	repo := newFakeRepo()
	u := seedUser(repo, "admin@viewtech.vn", "old-password", user.StatusActive)
	svc := NewUserService(repo, testManager())

	name := "Renamed"
	resp, err := svc.UpdateUser(context.Background(), u.ID, &user.UpdateUserReq{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Name)
	assert.Equal(t, user.RoleAdmin, resp.Role)

	// password untouched, old one still works
	_, err = svc.Login(context.Background(), &user.LoginReq{
		Email:    "admin@viewtech.vn",
		Password: "old-password",
	})
	assert.NoError(t, err)
}

func TestUpdateUserPasswordRotation(t *testing.T) {
	repo := newFakeRepo()
	u := seedUser(repo, "admin@viewtech.vn", "old-password", user.StatusActive)
	svc := NewUserService(repo, testManager())

	password := "brand-new-password"
	_, err := svc.UpdateUser(context.Background(), u.ID, &user.UpdateUserReq{Password: &password})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &user.LoginReq{
		Email:    "admin@viewtech.vn",
		Password: "old-password",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &user.LoginReq{
		Email:    "admin@viewtech.vn",
		Password: "brand-new-password",
	})
	assert.NoError(t, err)
}

func TestListUsersEnvelope(t *testing.T) {
	repo := newFakeRepo()
	seedUser(repo, "a@viewtech.vn", "x", user.StatusActive)
	seedUser(repo, "b@viewtech.vn", "x", user.StatusActive)
	svc := NewUserService(repo, testManager())

	users, env, err := svc.ListUsers(context.Background(), pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 2, env.Total)
	assert.Equal(t, 1, env.TotalPages)
}
