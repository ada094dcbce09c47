package repository

import (
	"context"
	"errors"

	"jaggery-store/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrDuplicateSKU is returned by Insert when the product's SKU is already
// present in the catalog. Seeding treats it as the idempotent no-op signal.
var ErrDuplicateSKU = errors.New("product sku already exists")

// ProductRepository defines the interface for catalog data access operations.
type ProductRepository interface {
	// GetAll retrieves every product currently stored.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByIDs retrieves the subset of products matching the given IDs.
	// Unmatched IDs are simply absent from the result.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Insert persists a new product and returns its assigned ID.
	// Returns ErrDuplicateSKU when the product's SKU is already taken.
	Insert(ctx context.Context, product *model.Product) (string, error)

	// AnySKUExists reports whether any of the given SKUs is already present.
	AnySKUExists(ctx context.Context, skus []string) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
// Orders are insert-only within checkout; GetByID exists for order lookup
// after the fact.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's line-item snapshots within the
	// provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID with its item snapshots attached.
	// Returns nil when no order matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
}
