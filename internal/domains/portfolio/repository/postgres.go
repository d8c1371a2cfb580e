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
	"github.com/lib/pq"

	"viewtech-backend/internal/domains/portfolio"
	"viewtech-backend/pkg/database"
	"viewtech-backend/pkg/logger"
)

const projectColumns = `
	p.id, p.title, p.slug, p.description, p.client_name, p.project_url,
	p.cover_image_url, p.technologies, p.status, p.featured, p.completion_date,
	p.created_by, p.updated_by, p.created_at, p.updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) portfolio.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*portfolio.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM portfolio_projects p WHERE p.id = $1`, projectColumns)
	return r.getOne(ctx, query, id)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*portfolio.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM portfolio_projects p WHERE p.slug = $1`, projectColumns)
	return r.getOne(ctx, query, slug)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg interface{}) (*portfolio.Project, error) {
	project, err := scanProject(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, portfolio.ErrProjectNotFound
		}
		logger.Error("portfolio getOne: database error", err)
		return nil, fmt.Errorf("failed to get portfolio project: %w", err)
	}

	if err := r.loadCategories(ctx, []*portfolio.Project{project}); err != nil {
		return nil, err
	}

	return project, nil
}

func (r *postgresRepository) List(ctx context.Context, filter portfolio.Filter) ([]portfolio.Project, int, error) {
	whereClause, args := buildWhereClause(filter)

	countQuery := `SELECT COUNT(*) FROM portfolio_projects p ` + whereClause
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("portfolio List: count error", err)
		return nil, 0, fmt.Errorf("failed to count portfolio projects: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM portfolio_projects p %s
		ORDER BY p.completion_date DESC NULLS LAST, p.created_at DESC`, projectColumns, whereClause)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("portfolio List: query error", err)
		return nil, 0, fmt.Errorf("failed to list portfolio projects: %w", err)
	}
	defer rows.Close()

	var projects []portfolio.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan portfolio project: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	refs := make([]*portfolio.Project, len(projects))
	for i := range projects {
		refs[i] = &projects[i]
	}
	if err := r.loadCategories(ctx, refs); err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func buildWhereClause(filter portfolio.Filter) (string, []interface{}) {
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
			SELECT 1 FROM portfolio_project_categories pc
			JOIN categories c ON c.id = pc.category_id
			WHERE pc.project_id = p.id AND c.slug = $%d)`, argIndex))
		args = append(args, filter.CategorySlug)
		argIndex++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *postgresRepository) Create(ctx context.Context, project *portfolio.Project, categoryIDs []uuid.UUID) (*portfolio.Project, error) {
	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*portfolio.Project, error) {
		const query = `
			INSERT INTO portfolio_projects (
				id, title, slug, description, client_name, project_url,
				cover_image_url, technologies, status, featured, completion_date,
				created_by, updated_by, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING id, title, slug, description, client_name, project_url,
				cover_image_url, technologies, status, featured, completion_date,
				created_by, updated_by, created_at, updated_at`

		row := tx.QueryRow(ctx, query,
			project.ID, project.Title, project.Slug, project.Description, project.ClientName, project.ProjectURL,
			project.CoverImageURL, pq.Array(project.Technologies), string(project.Status), project.Featured, project.CompletionDate,
			project.CreatedBy, project.UpdatedBy, project.CreatedAt, project.UpdatedAt,
		)

		created, err := scanProject(row)
		if err != nil {
			return nil, mapWriteError(err, "failed to create portfolio project")
		}

		if err := replaceCategoryRows(ctx, tx, created.ID, categoryIDs); err != nil {
			return nil, err
		}

		return created, nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.loadCategories(ctx, []*portfolio.Project{created}); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, project *portfolio.Project, categoryIDs *[]uuid.UUID) (*portfolio.Project, error) {
	updated, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*portfolio.Project, error) {
		const query = `
			UPDATE portfolio_projects SET
				title = $2, slug = $3, description = $4, client_name = $5,
				project_url = $6, cover_image_url = $7, technologies = $8,
				status = $9, featured = $10, completion_date = $11,
				updated_by = $12, updated_at = $13
			WHERE id = $1
			RETURNING id, title, slug, description, client_name, project_url,
				cover_image_url, technologies, status, featured, completion_date,
				created_by, updated_by, created_at, updated_at`

		row := tx.QueryRow(ctx, query,
			project.ID, project.Title, project.Slug, project.Description, project.ClientName,
			project.ProjectURL, project.CoverImageURL, pq.Array(project.Technologies),
			string(project.Status), project.Featured, project.CompletionDate,
			project.UpdatedBy, project.UpdatedAt,
		)

		updated, err := scanProject(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, portfolio.ErrProjectNotFound
			}
			return nil, mapWriteError(err, "failed to update portfolio project")
		}

		if categoryIDs != nil {
			if err := replaceCategoryRows(ctx, tx, updated.ID, *categoryIDs); err != nil {
				return nil, err
			}
		}

		return updated, nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.loadCategories(ctx, []*portfolio.Project{updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM portfolio_projects WHERE id = $1`, id)
	if err != nil {
		logger.Error("portfolio Delete: database error", err)
		return fmt.Errorf("failed to delete portfolio project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrProjectNotFound
	}
	return nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM portfolio_projects WHERE slug = $1 AND id != $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func replaceCategoryRows(ctx context.Context, tx pgx.Tx, projectID uuid.UUID, ids []uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM portfolio_project_categories WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to clear project categories: %w", err)
	}

	for _, id := range ids {
		const query = `INSERT INTO portfolio_project_categories (project_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(ctx, query, projectID, id); err != nil {
			return fmt.Errorf("failed to insert project category: %w", err)
		}
	}

	return nil
}

func (r *postgresRepository) loadCategories(ctx context.Context, projects []*portfolio.Project) error {
	if len(projects) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*portfolio.Project, len(projects))
	ids := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		p.Categories = []portfolio.TermRef{}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	const query = `
		SELECT pc.project_id, c.id, c.name, c.slug
		FROM portfolio_project_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.project_id = ANY($1)
		ORDER BY c.name`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load project categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID uuid.UUID
		var term portfolio.TermRef
		if err := rows.Scan(&projectID, &term.ID, &term.Name, &term.Slug); err != nil {
			return fmt.Errorf("failed to scan project category: %w", err)
		}
		if p, ok := byID[projectID]; ok {
			p.Categories = append(p.Categories, term)
		}
	}
	return rows.Err()
}

func mapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "slug") {
		return portfolio.ErrDuplicateSlug
	}
	logger.Error(msg, err)
	return fmt.Errorf("%s: %w", msg, err)
}

func scanProject(row pgx.Row) (*portfolio.Project, error) {
	project := &portfolio.Project{}
	var status string
	var technologies pq.StringArray
	var completionDate *time.Time

	err := row.Scan(
		&project.ID, &project.Title, &project.Slug, &project.Description, &project.ClientName, &project.ProjectURL,
		&project.CoverImageURL, &technologies, &status, &project.Featured, &completionDate,
		&project.CreatedBy, &project.UpdatedBy, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.Status = portfolio.Status(status)
	project.Technologies = []string(technologies)
	project.CompletionDate = completionDate
	return project, nil
}
