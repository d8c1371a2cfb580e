package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"viewtech-backend/internal/domains/blog"
	"viewtech-backend/pkg/database"
	"viewtech-backend/pkg/logger"
)

const postColumns = `
	p.id, p.title, p.slug, p.content, p.excerpt, p.cover_image_url,
	p.status, p.featured, p.published_at,
	p.created_by, p.updated_by, p.created_at, p.updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) blog.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM blog_posts p WHERE p.id = $1`, postColumns)
	return r.getOne(ctx, query, id)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM blog_posts p WHERE p.slug = $1`, postColumns)
	return r.getOne(ctx, query, slug)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg interface{}) (*blog.Post, error) {
	post, err := scanPost(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrPostNotFound
		}
		logger.Error("blog getOne: database error", err)
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}

	if err := r.loadTerms(ctx, []*blog.Post{post}); err != nil {
		return nil, err
	}

	return post, nil
}

func (r *postgresRepository) List(ctx context.Context, filter *blog.Filter) ([]blog.Post, int, error) {
	whereClause, args := buildWhereClause(filter)

	countQuery := `SELECT COUNT(*) FROM blog_posts p ` + whereClause
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("blog List: count error", err)
		return nil, 0, fmt.Errorf("failed to count blog posts: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM blog_posts p %s
		ORDER BY p.published_at DESC NULLS LAST, p.created_at DESC`, postColumns, whereClause)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("blog List: query error", err)
		return nil, 0, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer rows.Close()

	var posts []blog.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	refs := make([]*blog.Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}
	if err := r.loadTerms(ctx, refs); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func buildWhereClause(filter *blog.Filter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIndex))
		args = append(args, string(*filter.Status))
		argIndex++
	}

	if filter.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("p.featured = $%d", argIndex))
		args = append(args, *filter.Featured)
		argIndex++
	}

	if filter.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM blog_post_categories pc
			JOIN categories c ON c.id = pc.category_id
			WHERE pc.post_id = p.id AND c.slug = $%d)`, argIndex))
		args = append(args, filter.CategorySlug)
		argIndex++
	}

	if filter.TagSlug != "" {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM blog_post_tags pt
			JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.slug = $%d)`, argIndex))
		args = append(args, filter.TagSlug)
		argIndex++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *postgresRepository) Create(ctx context.Context, post *blog.Post, categoryIDs, tagIDs []uuid.UUID) (*blog.Post, error) {
	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*blog.Post, error) {
		const query = `
			INSERT INTO blog_posts (
				id, title, slug, content, excerpt, cover_image_url,
				status, featured, published_at,
				created_by, updated_by, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id, title, slug, content, excerpt, cover_image_url,
				status, featured, published_at,
				created_by, updated_by, created_at, updated_at`

		row := tx.QueryRow(ctx, query,
			post.ID, post.Title, post.Slug, post.Content, post.Excerpt, post.CoverImageURL,
			string(post.Status), post.Featured, post.PublishedAt,
			post.CreatedBy, post.UpdatedBy, post.CreatedAt, post.UpdatedAt,
		)

		created, err := scanPost(row)
		if err != nil {
			return nil, mapWriteError(err, "failed to create blog post")
		}

		if err := replaceJoinRows(ctx, tx, "blog_post_categories", "category_id", created.ID, categoryIDs); err != nil {
			return nil, err
		}
		if err := replaceJoinRows(ctx, tx, "blog_post_tags", "tag_id", created.ID, tagIDs); err != nil {
			return nil, err
		}

		return created, nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.loadTerms(ctx, []*blog.Post{created}); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, post *blog.Post, categoryIDs, tagIDs *[]uuid.UUID) (*blog.Post, error) {
	updated, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*blog.Post, error) {
		const query = `
			UPDATE blog_posts SET
				title = $2, slug = $3, content = $4, excerpt = $5,
				cover_image_url = $6, status = $7, featured = $8,
				published_at = $9, updated_by = $10, updated_at = $11
			WHERE id = $1
			RETURNING id, title, slug, content, excerpt, cover_image_url,
				status, featured, published_at,
				created_by, updated_by, created_at, updated_at`

		row := tx.QueryRow(ctx, query,
			post.ID, post.Title, post.Slug, post.Content, post.Excerpt,
			post.CoverImageURL, string(post.Status), post.Featured,
			post.PublishedAt, post.UpdatedBy, post.UpdatedAt,
		)

		updated, err := scanPost(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, blog.ErrPostNotFound
			}
			return nil, mapWriteError(err, "failed to update blog post")
		}

		if categoryIDs != nil {
			if err := replaceJoinRows(ctx, tx, "blog_post_categories", "category_id", updated.ID, *categoryIDs); err != nil {
				return nil, err
			}
		}
		if tagIDs != nil {
			if err := replaceJoinRows(ctx, tx, "blog_post_tags", "tag_id", updated.ID, *tagIDs); err != nil {
				return nil, err
			}
		}

		return updated, nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.loadTerms(ctx, []*blog.Post{updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		logger.Error("blog Delete: database error", err)
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1 AND id != $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// replaceJoinRows swaps the m2m association rows for a post.
func replaceJoinRows(ctx context.Context, tx pgx.Tx, table, column string, postID uuid.UUID, ids []uuid.UUID) error {
	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE post_id = $1`, table), postID); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	for _, id := range ids {
		query := fmt.Sprintf(`INSERT INTO %s (post_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`, table, column)
		if _, err := tx.Exec(ctx, query, postID, id); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	return nil
}

// loadTerms attaches categories and tags to the given posts with two
// set-based queries instead of one pair per post.
func (r *postgresRepository) loadTerms(ctx context.Context, posts []*blog.Post) error {
	if len(posts) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*blog.Post, len(posts))
	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		p.Categories = []blog.TermRef{}
		p.Tags = []blog.TermRef{}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	const catQuery = `
		SELECT pc.post_id, c.id, c.name, c.slug
		FROM blog_post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = ANY($1)
		ORDER BY c.name`

	if err := r.appendTerms(ctx, catQuery, ids, byID, func(p *blog.Post, t blog.TermRef) {
		p.Categories = append(p.Categories, t)
	}); err != nil {
		return err
	}

	const tagQuery = `
		SELECT pt.post_id, t.id, t.name, t.slug
		FROM blog_post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name`

	return r.appendTerms(ctx, tagQuery, ids, byID, func(p *blog.Post, t blog.TermRef) {
		p.Tags = append(p.Tags, t)
	})
}

func (r *postgresRepository) appendTerms(
	ctx context.Context,
	query string,
	ids []uuid.UUID,
	byID map[uuid.UUID]*blog.Post,
	attach func(*blog.Post, blog.TermRef),
) error {
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load post terms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID uuid.UUID
		var term blog.TermRef
		if err := rows.Scan(&postID, &term.ID, &term.Name, &term.Slug); err != nil {
			return fmt.Errorf("failed to scan post term: %w", err)
		}
		if p, ok := byID[postID]; ok {
			attach(p, term)
		}
	}
	return rows.Err()
}

func mapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
		return blog.ErrDuplicateSlug
	}
	logger.Error(msg, err)
	return fmt.Errorf("%s: %w", msg, err)
}

func scanPost(row pgx.Row) (*blog.Post, error) {
	post := &blog.Post{}
	var status string
	var publishedAt *time.Time

	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.Excerpt, &post.CoverImageURL,
		&status, &post.Featured, &publishedAt,
		&post.CreatedBy, &post.UpdatedBy, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Status = blog.Status(status)
	post.PublishedAt = publishedAt
	return post, nil
}
