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

	"viewtech-backend/internal/domains/taxonomy"
)

const categoryColumns = `c.id, c.name, c.slug, c.description, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM blog_post_categories bpc WHERE bpc.category_id = c.id)`

const tagColumns = `t.id, t.name, t.slug, t.created_at, t.updated_at,
	(SELECT COUNT(*) FROM blog_post_tags bpt WHERE bpt.tag_id = t.id)`

type postgresCategoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) taxonomy.CategoryRepository {
	return &postgresCategoryRepository{db: db}
}

func (r *postgresCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*taxonomy.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories c WHERE c.id = $1`, categoryColumns)
	return r.getOne(ctx, query, id)
}

func (r *postgresCategoryRepository) GetBySlug(ctx context.Context, slug string) (*taxonomy.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories c WHERE c.slug = $1`, categoryColumns)
	return r.getOne(ctx, query, slug)
}

func (r *postgresCategoryRepository) getOne(ctx context.Context, query string, arg any) (*taxonomy.Category, error) {
	var c taxonomy.Category
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.PostCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, taxonomy.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

func (r *postgresCategoryRepository) List(ctx context.Context, limit, offset int) ([]taxonomy.Category, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM categories c ORDER BY c.name ASC`, categoryColumns)
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []taxonomy.Category{}
	for rows.Next() {
		var c taxonomy.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.PostCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

func (r *postgresCategoryRepository) Create(ctx context.Context, category *taxonomy.Category) (*taxonomy.Category, error) {
	query := `
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, category.Name, category.Slug, category.Description).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, mapWriteError(err, "create category")
	}
	return category, nil
}

func (r *postgresCategoryRepository) Update(ctx context.Context, category *taxonomy.Category) (*taxonomy.Category, error) {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query, category.ID, category.Name, category.Slug, category.Description).
		Scan(&category.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, taxonomy.ErrCategoryNotFound
		}
		return nil, mapWriteError(err, "update category")
	}
	return category, nil
}

func (r *postgresCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return taxonomy.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresCategoryRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1 AND id != $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category slug: %w", err)
	}
	return exists, nil
}

type postgresTagRepository struct {
	db *pgxpool.Pool
}

func NewTagRepository(db *pgxpool.Pool) taxonomy.TagRepository {
	return &postgresTagRepository{db: db}
}

func (r *postgresTagRepository) GetByID(ctx context.Context, id uuid.UUID) (*taxonomy.Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM tags t WHERE t.id = $1`, tagColumns)
	return r.getOne(ctx, query, id)
}

func (r *postgresTagRepository) GetBySlug(ctx context.Context, slug string) (*taxonomy.Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM tags t WHERE t.slug = $1`, tagColumns)
	return r.getOne(ctx, query, slug)
}

func (r *postgresTagRepository) getOne(ctx context.Context, query string, arg any) (*taxonomy.Tag, error) {
	var t taxonomy.Tag
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt, &t.PostCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, taxonomy.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &t, nil
}

func (r *postgresTagRepository) List(ctx context.Context, limit, offset int) ([]taxonomy.Tag, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tags`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM tags t ORDER BY t.name ASC`, tagColumns)
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := []taxonomy.Tag{}
	for rows.Next() {
		var t taxonomy.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt, &t.PostCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, total, rows.Err()
}

func (r *postgresTagRepository) Create(ctx context.Context, tag *taxonomy.Tag) (*taxonomy.Tag, error) {
	query := `
		INSERT INTO tags (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, tag.Name, tag.Slug).
		Scan(&tag.ID, &tag.CreatedAt, &tag.UpdatedAt)
	if err != nil {
		return nil, mapWriteError(err, "create tag")
	}
	return tag, nil
}

func (r *postgresTagRepository) Update(ctx context.Context, tag *taxonomy.Tag) (*taxonomy.Tag, error) {
	query := `
		UPDATE tags
		SET name = $2, slug = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query, tag.ID, tag.Name, tag.Slug).Scan(&tag.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, taxonomy.ErrTagNotFound
		}
		return nil, mapWriteError(err, "update tag")
	}
	return tag, nil
}

func (r *postgresTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return taxonomy.ErrTagNotFound
	}
	return nil
}

func (r *postgresTagRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tags WHERE slug = $1 AND id != $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check tag slug: %w", err)
	}
	return exists, nil
}

// mapWriteError surfaces slug unique-constraint violations as the domain
// duplicate error. The database constraint is the authoritative collision
// signal; SlugExists checks are only an optimisation.
func mapWriteError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
		return taxonomy.ErrDuplicateSlug
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
