package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"viewtech-backend/internal/domains/user"
	"viewtech-backend/pkg/logger"
)

const userColumns = `
	u.id, u.name, u.email, u.password_hash, u.role, u.status, u.created_at, u.updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users u WHERE u.id = $1`, userColumns)
	return r.getOne(ctx, query, id)
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users u WHERE LOWER(u.email) = LOWER($1)`, userColumns)
	return r.getOne(ctx, query, email)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		logger.Error("user getOne: database error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]user.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		logger.Error("user List: count error", err)
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM users u ORDER BY u.created_at DESC`, userColumns)
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("user List: query error", err)
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	const query = `
		INSERT INTO users (id, name, email, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, email, password_hash, role, status, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), string(u.Status), u.CreatedAt, u.UpdatedAt,
	)

	created, err := scanUser(row)
	if err != nil {
		return nil, mapWriteError(err, "failed to create user")
	}
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, u *user.User) (*user.User, error) {
	const query = `
		UPDATE users SET
			name = $2, email = $3, password_hash = $4, role = $5, status = $6, updated_at = $7
		WHERE id = $1
		RETURNING id, name, email, password_hash, role, status, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), string(u.Status), u.UpdatedAt,
	)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, mapWriteError(err, "failed to update user")
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.Error("user Delete: database error", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func mapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "email") {
		return user.ErrEmailTaken
	}
	logger.Error(msg, err)
	return fmt.Errorf("%s: %w", msg, err)
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	var role, status string

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Role = user.Role(role)
	u.Status = user.Status(status)
	return u, nil
}
