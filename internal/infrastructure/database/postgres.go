package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"viewtech-backend/internal/config"
)

const (
	maxConnectRetries = 3
	retryDelay        = 2 * time.Second
	connectTimeout    = 10 * time.Second
)

type PostgresDB struct {
	Pool   *pgxpool.Pool
	Config *config.DatabaseConfig
}

func NewPostgresDB(cfg *config.DatabaseConfig) *PostgresDB {
	return &PostgresDB{Config: cfg}
}

func (db *PostgresDB) buildConnectionString() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		db.Config.User,
		db.Config.Password,
		db.Config.Host,
		db.Config.Port,
		db.Config.Database,
		db.Config.SSLMode,
	)
}

func (db *PostgresDB) configurePool() (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(db.buildConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(db.Config.MaxConns)
	poolConfig.MinConns = int32(db.Config.MinConns)
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	return poolConfig, nil
}

func (db *PostgresDB) connectWithRetry(ctx context.Context, poolConfig *pgxpool.Config) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var lastErr error

	for attempt := 1; attempt <= maxConnectRetries; attempt++ {
		log.Printf("[DATABASE] Connection attempt %d/%d", attempt, maxConnectRetries)

		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		pool, lastErr = pgxpool.NewWithConfig(connectCtx, poolConfig)
		cancel()

		if lastErr == nil {
			if err := pool.Ping(ctx); err != nil {
				pool.Close()
				lastErr = err
			} else {
				log.Printf("[DATABASE] Connected on attempt %d", attempt)
				return pool, nil
			}
		}

		log.Printf("[DATABASE] Attempt %d failed: %v", attempt, lastErr)

		if attempt < maxConnectRetries {
			delay := retryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", maxConnectRetries, lastErr)
}

func (db *PostgresDB) Connect(ctx context.Context) error {
	poolConfig, err := db.configurePool()
	if err != nil {
		return fmt.Errorf("pool configuration failed: %w", err)
	}

	pool, err := db.connectWithRetry(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	db.Pool = pool
	return nil
}

func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(healthCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
