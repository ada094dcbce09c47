package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"jaggery-store/internal/model"
	"jaggery-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Orders at or above this subtotal ship free; below it a flat rate applies.
const (
	freeShippingThreshold = 10.0
	flatShippingRate      = 1.0
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

// Checkout resolves each cart line against the catalog, computes totals and
// persists the order. Any missing product aborts the whole checkout before
// anything is written.
func (s *checkoutService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if err := s.validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	// Batch-fetch the distinct products referenced by the cart.
	productIDs := distinctProductIDs(req.Cart)
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Int("product_count", len(productIDs)).Msg("failed to fetch cart products")
		return nil, fmt.Errorf("failed to fetch cart products: %w", err)
	}

	productMap := make(map[string]model.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	// Resolve each line in input order, snapshotting title and price.
	var items []model.OrderItem
	subtotal := 0.0
	for _, line := range req.Cart {
		product, ok := productMap[line.ProductID]
		if !ok {
			s.logger.Warn().Str("product_id", line.ProductID).Msg("cart references unknown product")
			return nil, model.NewProductNotFoundError(line.ProductID)
		}

		subtotal += product.Price * float64(line.Quantity)
		items = append(items, model.OrderItem{
			ProductID: line.ProductID,
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
	}

	shipping := flatShippingRate
	if subtotal >= freeShippingThreshold {
		shipping = 0.0
	}

	// Rounding happens at the subtotal/shipping stage; the stored total is
	// the sum of the rounded pieces, not re-rounded.
	subtotal = round2(subtotal)
	shipping = round2(shipping)
	total := subtotal + shipping

	status := model.OrderStatusPending
	if req.PaymentMethod == model.PaymentMethodCard {
		status = model.OrderStatusPaid
	}

	order := &model.Order{
		ID:            uuid.New(),
		CustomerName:  req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		AddressLine:   req.AddressLine,
		City:          req.City,
		Pincode:       req.Pincode,
		PaymentMethod: req.PaymentMethod,
		Items:         items,
		Subtotal:      subtotal,
		Shipping:      shipping,
		Total:         total,
		Status:        status,
		CreatedAt:     time.Now(),
	}

	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}

	if err := s.persistOrder(ctx, order); err != nil {
		return nil, err
	}

	var payment *model.PaymentInfo
	if req.PaymentMethod == model.PaymentMethodCard {
		// Mock payment confirmation standing in for a real gateway.
		payment = &model.PaymentInfo{
			Provider:      "mock",
			Status:        "succeeded",
			TransactionID: order.ID.String(),
		}
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Float64("total", order.Total).
		Str("status", order.Status).
		Msg("checkout completed")

	return &model.CheckoutResponse{
		OrderID: order.ID.String(),
		Total:   order.Total,
		Status:  order.Status,
		Payment: payment,
	}, nil
}

// GetOrder retrieves a persisted order with its item snapshots.
func (s *checkoutService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// persistOrder writes the order and its items in one transaction.
func (s *checkoutService) persistOrder(ctx context.Context, order *model.Order) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to persist order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to persist order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.Items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(order.Items)).
			Msg("failed to create order items")
		return fmt.Errorf("failed to persist order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to persist order: %w", err)
	}

	return nil
}

// validateCheckoutRequest rejects malformed input before any store access.
// Payment method is a closed set: anything but "cod" or "card" fails here
// instead of silently falling through to a pending order.
func (s *checkoutService) validateCheckoutRequest(req *model.CheckoutRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "checkout request is required")
	}

	required := []struct {
		name  string
		value string
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"phone", req.Phone},
		{"address_line", req.AddressLine},
		{"city", req.City},
		{"pincode", req.Pincode},
	}

	for _, field := range required {
		if field.value == "" {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("%s is required", field.name))
		}
	}

	if req.PaymentMethod != model.PaymentMethodCod && req.PaymentMethod != model.PaymentMethodCard {
		s.logger.Warn().Str("payment_method", req.PaymentMethod).Msg("rejected unknown payment method")
		return model.ErrInvalidPaymentMethod
	}

	if len(req.Cart) == 0 {
		return model.ErrEmptyCart
	}

	for i, line := range req.Cart {
		if line.ProductID == "" {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("cart item %d: product_id is required", i))
		}
		if line.Quantity < 1 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", line.ProductID).
				Int("quantity", line.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}

// distinctProductIDs collects the unique product ids from the cart,
// preserving first-seen order.
func distinctProductIDs(cart []model.CartItem) []string {
	seen := make(map[string]struct{}, len(cart))
	ids := make([]string, 0, len(cart))
	for _, line := range cart {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
