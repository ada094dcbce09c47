package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment method values accepted at checkout.
const (
	PaymentMethodCod  = "cod"
	PaymentMethodCard = "card"
)

// Order status values.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// Order represents a completed checkout transaction. Orders are created
// exactly once per checkout and never updated or deleted.
type Order struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	CustomerName  string      `json:"customer_name" db:"customer_name"`
	Email         string      `json:"email" db:"email"`
	Phone         string      `json:"phone" db:"phone"`
	AddressLine   string      `json:"address_line" db:"address_line"`
	City          string      `json:"city" db:"city"`
	Pincode       string      `json:"pincode" db:"pincode"`
	PaymentMethod string      `json:"payment_method" db:"payment_method"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal" db:"subtotal"`
	Shipping      float64     `json:"shipping" db:"shipping"`
	Total         float64     `json:"total" db:"total"`
	Status        string      `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
}

// OrderItem represents a line item embedded in an order. Title and price
// are frozen copies taken at checkout time; a later change to the referenced
// product must not affect them.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"product_id" db:"product_id"`
	Title     string    `json:"title" db:"title"`
	Price     float64   `json:"price" db:"price"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// CartItem represents a single line in a checkout request cart.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest represents the request payload for a checkout.
type CheckoutRequest struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	AddressLine   string     `json:"address_line"`
	City          string     `json:"city"`
	Pincode       string     `json:"pincode"`
	PaymentMethod string     `json:"payment_method"`
	Cart          []CartItem `json:"cart"`
}

// PaymentInfo represents a mock payment confirmation returned for card
// checkouts. TransactionID echoes the order identifier.
type PaymentInfo struct {
	Provider      string `json:"provider"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// CheckoutResponse represents the response payload for a successful checkout.
type CheckoutResponse struct {
	OrderID string       `json:"order_id"`
	Total   float64      `json:"total"`
	Status  string       `json:"status"`
	Payment *PaymentInfo `json:"payment"`
}

// SeedResponse reports the outcome of a catalog seeding run.
type SeedResponse struct {
	Inserted int    `json:"inserted"`
	Message  string `json:"message,omitempty"`
}
