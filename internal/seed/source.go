// Package seed provides sources of demo catalog products for the /seed
// endpoint: a built-in static set, a local JSON file, or an S3 object.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"jaggery-store/internal/model"
)

// Source yields the demo products a seeding run should insert.
type Source interface {
	Products(ctx context.Context) ([]model.Product, error)
}

// staticSource returns the two canonical jaggery products.
type staticSource struct{}

// NewStaticSource creates the built-in demo product source.
func NewStaticSource() Source {
	return staticSource{}
}

func (staticSource) Products(ctx context.Context) ([]model.Product, error) {
	return DefaultProducts(), nil
}

// DefaultProducts returns the built-in demo catalog: 500g and 1kg jaggery
// powder variants.
func DefaultProducts() []model.Product {
	return []model.Product{
		{
			Title:       "Jaggery Powder 500g",
			Description: strPtr("Pure, chemical-free jaggery powder. Perfect for tea, coffee and cooking."),
			Price:       2.49,
			Category:    "jaggery",
			InStock:     true,
			Image:       strPtr("/jaggery-500.jpg"),
			SKU:         strPtr("JAG-500"),
			WeightG:     intPtr(500),
		},
		{
			Title:       "Jaggery Powder 1kg",
			Description: strPtr("Pure, chemical-free jaggery powder family pack."),
			Price:       4.49,
			Category:    "jaggery",
			InStock:     true,
			Image:       strPtr("/jaggery-1000.jpg"),
			SKU:         strPtr("JAG-1000"),
			WeightG:     intPtr(1000),
		},
	}
}

// decodeProducts parses a JSON array of products and checks the fields a
// seed entry must provide. IDs and timestamps are assigned by the store.
func decodeProducts(r io.Reader) ([]model.Product, error) {
	var products []model.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode seed products: %w", err)
	}

	for i, p := range products {
		if p.Title == "" {
			return nil, fmt.Errorf("seed product %d: title is required", i)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("seed product %d: price must be non-negative", i)
		}
		if p.Category == "" {
			return nil, fmt.Errorf("seed product %d: category is required", i)
		}
		if p.WeightG != nil && *p.WeightG < 0 {
			return nil, fmt.Errorf("seed product %d: weight_g must be non-negative", i)
		}
	}

	return products, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
