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

	"viewtech-backend/internal/domains/page"
	"viewtech-backend/pkg/logger"
)

const pageColumns = `
	p.id, p.title, p.slug, p.content, p.status,
	p.created_by, p.updated_by, p.created_at, p.updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) page.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*page.Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM pages p WHERE p.id = $1`, pageColumns)
	return r.getOne(ctx, query, id)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*page.Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM pages p WHERE p.slug = $1`, pageColumns)
	return r.getOne(ctx, query, slug)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg interface{}) (*page.Page, error) {
	p, err := scanPage(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, page.ErrPageNotFound
		}
		logger.Error("page getOne: database error", err)
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, filter page.Filter) ([]page.Page, int, error) {
	whereClause := ""
	var args []interface{}
	if filter.Status != nil {
		whereClause = "WHERE p.status = $1"
		args = append(args, string(*filter.Status))
	}

	countQuery := `SELECT COUNT(*) FROM pages p ` + whereClause
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("page List: count error", err)
		return nil, 0, fmt.Errorf("failed to count pages: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM pages p %s ORDER BY p.updated_at DESC`, pageColumns, whereClause)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("page List: query error", err)
		return nil, 0, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []page.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, *p)
	}
	return pages, total, rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, p *page.Page) (*page.Page, error) {
	const query = `
		INSERT INTO pages (id, title, slug, content, status, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, slug, content, status, created_by, updated_by, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		p.ID, p.Title, p.Slug, p.Content, string(p.Status),
		p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.UpdatedAt,
	)

	created, err := scanPage(row)
	if err != nil {
		return nil, mapWriteError(err, "failed to create page")
	}
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *page.Page) (*page.Page, error) {
	const query = `
		UPDATE pages SET
			title = $2, slug = $3, content = $4, status = $5,
			updated_by = $6, updated_at = $7
		WHERE id = $1
		RETURNING id, title, slug, content, status, created_by, updated_by, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		p.ID, p.Title, p.Slug, p.Content, string(p.Status), p.UpdatedBy, p.UpdatedAt,
	)

	updated, err := scanPage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, page.ErrPageNotFound
		}
		return nil, mapWriteError(err, "failed to update page")
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		logger.Error("page Delete: database error", err)
		return fmt.Errorf("failed to delete page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return page.ErrPageNotFound
	}
	return nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM pages WHERE slug = $1 AND id != $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func mapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
		return page.ErrDuplicateSlug
	}
	logger.Error(msg, err)
	return fmt.Errorf("%s: %w", msg, err)
}

func scanPage(row pgx.Row) (*page.Page, error) {
	p := &page.Page{}
	var status string

	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &status,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status = page.Status(status)
	return p, nil
}
