package database

import (
	"context"
	"fmt"
	"time"

	"jaggery-store/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPool creates a new PostgreSQL connection pool.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("database connection pool created successfully")

	return pool, nil
}

// Schema is the storefront schema. The unique index on sku is what makes
// concurrent seeding idempotent: a duplicate-key failure on insert is
// treated as the already-seeded signal.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		category TEXT NOT NULL,
		in_stock BOOLEAN NOT NULL DEFAULT TRUE,
		image TEXT,
		sku TEXT,
		weight_g INTEGER CHECK (weight_g >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_products_sku
		ON products(sku) WHERE sku IS NOT NULL;

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		customer_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		address_line TEXT NOT NULL,
		city TEXT NOT NULL,
		pincode TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		subtotal DOUBLE PRECISION NOT NULL CHECK (subtotal >= 0),
		shipping DOUBLE PRECISION NOT NULL CHECK (shipping >= 0),
		total DOUBLE PRECISION NOT NULL CHECK (total >= 0),
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL,
		title TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		quantity INTEGER NOT NULL CHECK (quantity > 0)
	);

	CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`

// Migrate applies the storefront schema. Statements are idempotent, so the
// call is safe on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info().Msg("database schema applied")
	return nil
}
