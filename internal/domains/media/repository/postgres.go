package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"viewtech-backend/internal/domains/media"
	"viewtech-backend/pkg/logger"
)

const mediaColumns = `
	m.id, m.file_name, m.storage_key, m.url, m.mime_type, m.size_bytes,
	m.width, m.height, m.variants, m.uploaded_by, m.created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) media.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*media.Media, error) {
	query := fmt.Sprintf(`SELECT %s FROM media m WHERE m.id = $1`, mediaColumns)

	m, err := scanMedia(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, media.ErrMediaNotFound
		}
		logger.Error("media GetByID: database error", err)
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	return m, nil
}

func (r *postgresRepository) List(ctx context.Context, filter media.Filter) ([]media.Media, int, error) {
	whereClause := ""
	var args []interface{}
	if filter.MimePrefix != "" {
		whereClause = "WHERE m.mime_type LIKE $1"
		args = append(args, filter.MimePrefix+"%")
	}

	countQuery := `SELECT COUNT(*) FROM media m ` + whereClause
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("media List: count error", err)
		return nil, 0, fmt.Errorf("failed to count media: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM media m %s ORDER BY m.created_at DESC`, mediaColumns, whereClause)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("media List: query error", err)
		return nil, 0, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	var items []media.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, total, rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, m *media.Media) (*media.Media, error) {
	variants, err := json.Marshal(m.Variants)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal variants: %w", err)
	}

	const query = `
		INSERT INTO media (id, file_name, storage_key, url, mime_type, size_bytes,
			width, height, variants, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, file_name, storage_key, url, mime_type, size_bytes,
			width, height, variants, uploaded_by, created_at`

	row := r.pool.QueryRow(ctx, query,
		m.ID, m.FileName, m.StorageKey, m.URL, m.MimeType, m.SizeBytes,
		m.Width, m.Height, variants, m.UploadedBy, m.CreatedAt,
	)

	created, err := scanMedia(row)
	if err != nil {
		logger.Error("media Create: database error", err)
		return nil, fmt.Errorf("failed to create media: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) SetVariants(ctx context.Context, id uuid.UUID, variants map[string]string, width, height int) error {
	data, err := json.Marshal(variants)
	if err != nil {
		return fmt.Errorf("failed to marshal variants: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE media SET variants = $2, width = $3, height = $4 WHERE id = $1`,
		id, data, width, height,
	)
	if err != nil {
		logger.Error("media SetVariants: database error", err)
		return fmt.Errorf("failed to set media variants: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return media.ErrMediaNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		logger.Error("media Delete: database error", err)
		return fmt.Errorf("failed to delete media: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return media.ErrMediaNotFound
	}
	return nil
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM media WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check media: %w", err)
	}
	return exists, nil
}

func scanMedia(row pgx.Row) (*media.Media, error) {
	m := &media.Media{}
	var variants []byte

	err := row.Scan(
		&m.ID, &m.FileName, &m.StorageKey, &m.URL, &m.MimeType, &m.SizeBytes,
		&m.Width, &m.Height, &variants, &m.UploadedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(variants) > 0 {
		if err := json.Unmarshal(variants, &m.Variants); err != nil {
			return nil, fmt.Errorf("failed to unmarshal variants: %w", err)
		}
	}
	if m.Variants == nil {
		m.Variants = map[string]string{}
	}
	return m, nil
}
