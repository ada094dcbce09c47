package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jaggery-store/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = "id, title, description, price, category, in_stock, image, sku, weight_g, created_at"

// GetAll retrieves every product currently stored.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		ORDER BY created_at, title
	`, productColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Category,
			&p.InStock, &p.Image, &p.SKU, &p.WeightG, &p.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByIDs retrieves the subset of products matching the given IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = ANY($1)
	`, productColumns)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Category,
			&p.InStock, &p.Image, &p.SKU, &p.WeightG, &p.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Insert persists a new product and returns its assigned ID.
func (r *productRepository) Insert(ctx context.Context, product *model.Product) (string, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO products (id, title, description, price, category, in_stock, image, sku, weight_g, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Title, product.Description, product.Price, product.Category,
		product.InStock, product.Image, product.SKU, product.WeightG, product.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			r.logger.Debug().
				Str("sku", derefOrEmpty(product.SKU)).
				Msg("product sku already exists")
			return "", ErrDuplicateSKU
		}
		r.logger.Error().Err(err).Str("title", product.Title).Msg("failed to insert product")
		return "", fmt.Errorf("failed to insert product: %w", err)
	}

	r.logger.Debug().
		Str("product_id", product.ID).
		Str("title", product.Title).
		Msg("product inserted")

	return product.ID, nil
}

// AnySKUExists reports whether any of the given SKUs is already present.
func (r *productRepository) AnySKUExists(ctx context.Context, skus []string) (bool, error) {
	if len(skus) == 0 {
		return false, nil
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM products WHERE sku = ANY($1)
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, skus).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Int("count", len(skus)).Msg("failed to check sku existence")
		return false, fmt.Errorf("failed to check sku existence: %w", err)
	}

	return exists, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
