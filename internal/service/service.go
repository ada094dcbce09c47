package service

import (
	"context"

	"jaggery-store/internal/model"

	"github.com/google/uuid"
)

// CatalogService defines operations for catalog management.
type CatalogService interface {
	// ListAll retrieves every product in the catalog.
	ListAll(ctx context.Context) ([]model.Product, error)

	// Seed inserts the demo catalog products unless they already exist.
	Seed(ctx context.Context) (*model.SeedResponse, error)
}

// CheckoutService defines the checkout processor.
type CheckoutService interface {
	// Checkout resolves the cart against the catalog, computes totals,
	// persists the order and returns the checkout result.
	Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// GetOrder retrieves a persisted order with its item snapshots.
	// Returns nil when no order matches.
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
}
