package model

import "time"

// Product represents a catalog entry. The store assigns the ID on insert;
// checkout never mutates or deletes products.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	InStock     bool      `json:"in_stock" db:"in_stock"`
	Image       *string   `json:"image,omitempty" db:"image"`
	SKU         *string   `json:"sku,omitempty" db:"sku"`
	WeightG     *int      `json:"weight_g,omitempty" db:"weight_g"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
