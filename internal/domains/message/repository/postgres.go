package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"viewtech-backend/internal/domains/message"
	"viewtech-backend/pkg/logger"
)

const messageColumns = `
	m.id, m.name, m.email, m.phone, m.subject, m.message,
	m.status, m.response_text, m.responded_at, m.created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) message.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*message.Message, error) {
	query := fmt.Sprintf(`SELECT %s FROM contact_messages m WHERE m.id = $1`, messageColumns)

	m, err := scanMessage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, message.ErrMessageNotFound
		}
		logger.Error("message GetByID: database error", err)
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return m, nil
}

func (r *postgresRepository) List(ctx context.Context, filter message.Filter) ([]message.Message, int, error) {
	whereClause := ""
	var args []interface{}
	if filter.Status != nil {
		whereClause = "WHERE m.status = $1"
		args = append(args, string(*filter.Status))
	}

	countQuery := `SELECT COUNT(*) FROM contact_messages m ` + whereClause
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("message List: count error", err)
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM contact_messages m %s ORDER BY m.created_at DESC`, messageColumns, whereClause)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("message List: query error", err)
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []message.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, *m)
	}
	return messages, total, rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, m *message.Message) (*message.Message, error) {
	const query = `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, email, phone, subject, message, status, response_text, responded_at, created_at`

	row := r.pool.QueryRow(ctx, query,
		m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Body, string(m.Status), m.CreatedAt,
	)

	created, err := scanMessage(row)
	if err != nil {
		logger.Error("message Create: database error", err)
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status message.Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_messages SET status = $2 WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		logger.Error("message UpdateStatus: database error", err)
		return fmt.Errorf("failed to update message status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return message.ErrMessageNotFound
	}
	return nil
}

func (r *postgresRepository) Respond(ctx context.Context, id uuid.UUID, responseText string, respondedAt time.Time) (*message.Message, error) {
	const query = `
		UPDATE contact_messages
		SET status = 'responded', response_text = $2, responded_at = $3
		WHERE id = $1
		RETURNING id, name, email, phone, subject, message, status, response_text, responded_at, created_at`

	m, err := scanMessage(r.pool.QueryRow(ctx, query, id, responseText, respondedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, message.ErrMessageNotFound
		}
		logger.Error("message Respond: database error", err)
		return nil, fmt.Errorf("failed to respond to message: %w", err)
	}
	return m, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		logger.Error("message Delete: database error", err)
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return message.ErrMessageNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteRespondedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM contact_messages WHERE status = 'responded' AND created_at < $1`,
		cutoff,
	)
	if err != nil {
		logger.Error("message DeleteRespondedBefore: database error", err)
		return 0, fmt.Errorf("failed to prune messages: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanMessage(row pgx.Row) (*message.Message, error) {
	m := &message.Message{}
	var status string

	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Body,
		&status, &m.ResponseText, &m.RespondedAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Status = message.Status(status)
	return m, nil
}
