package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"viewtech-backend/internal/domains/settings"
	"viewtech-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) settings.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]settings.Setting, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		logger.Error("settings GetAll: query error", err)
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var items []settings.Setting
	for rows.Next() {
		var s settings.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *postgresRepository) Get(ctx context.Context, key string) (*settings.Setting, error) {
	var s settings.Setting
	err := r.pool.QueryRow(ctx,
		`SELECT key, value, updated_at FROM settings WHERE key = $1`, key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, settings.ErrSettingNotFound
		}
		logger.Error("settings Get: database error", err)
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, key, value string) (*settings.Setting, error) {
	var s settings.Setting
	err := r.pool.QueryRow(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING key, value, updated_at`,
		key, value,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		logger.Error("settings Upsert: database error", err)
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) Delete(ctx context.Context, key string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		logger.Error("settings Delete: database error", err)
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return settings.ErrSettingNotFound
	}
	return nil
}
