package repository

import (
	"context"
	"testing"
	"time"

	"jaggery-store/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *model.Order {
	orderID := uuid.New()
	return &model.Order{
		ID:            orderID,
		CustomerName:  "Asha Kumar",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		AddressLine:   "12 Market Road",
		City:          "Pune",
		Pincode:       "411001",
		PaymentMethod: model.PaymentMethodCod,
		Subtotal:      4.98,
		Shipping:      1.0,
		Total:         5.98,
		Status:        model.OrderStatusPending,
		CreatedAt:     time.Now(),
		Items: []model.OrderItem{
			{ID: uuid.New(), OrderID: orderID, ProductID: "P500", Title: "Jaggery Powder 500g", Price: 2.49, Quantity: 2},
		},
	}
}

func createOrder(t *testing.T, repo OrderRepository, order *model.Order) {
	t.Helper()

	ctx := context.Background()
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, repo.CreateOrderItems(ctx, tx, order.Items))
	require.NoError(t, tx.Commit(ctx))
}

func TestOrderRepository_CreateAndGetByID(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(pool, zerolog.Nop())

	order := sampleOrder()
	createOrder(t, repo, order)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, "Asha Kumar", got.CustomerName)
	assert.Equal(t, model.PaymentMethodCod, got.PaymentMethod)
	assert.InDelta(t, 4.98, got.Subtotal, 1e-9)
	assert.InDelta(t, 1.0, got.Shipping, 1e-9)
	assert.InDelta(t, 5.98, got.Total, 1e-9)
	assert.Equal(t, model.OrderStatusPending, got.Status)

	require.Len(t, got.Items, 1)
	assert.Equal(t, "P500", got.Items[0].ProductID)
	assert.Equal(t, "Jaggery Powder 500g", got.Items[0].Title)
	assert.InDelta(t, 2.49, got.Items[0].Price, 1e-9)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewOrderRepository(pool, zerolog.Nop())

	got, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepository_RollbackLeavesNoOrder(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(pool, zerolog.Nop())

	order := sampleOrder()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, tx.Rollback(ctx))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepository_ItemSnapshotsSurviveCatalogChanges(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	productRepo := NewProductRepository(pool, zerolog.Nop())
	orderRepo := NewOrderRepository(pool, zerolog.Nop())

	productID, err := productRepo.Insert(ctx, sampleProduct("Jaggery Powder 500g", "JAG-500", 2.49))
	require.NoError(t, err)

	order := sampleOrder()
	order.Items[0].ProductID = productID
	createOrder(t, orderRepo, order)

	// Change the catalog entry after the order is placed.
	_, err = pool.Exec(ctx, "UPDATE products SET price = 9.99, title = 'Renamed Product' WHERE id = $1", productID)
	require.NoError(t, err)

	got, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)

	// The persisted snapshot keeps the checkout-time values.
	assert.Equal(t, "Jaggery Powder 500g", got.Items[0].Title)
	assert.InDelta(t, 2.49, got.Items[0].Price, 1e-9)
}

func TestOrderRepository_MultipleItemsKeepDistinctSnapshots(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(pool, zerolog.Nop())

	order := sampleOrder()
	order.Items = append(order.Items, model.OrderItem{
		ID:        uuid.New(),
		OrderID:   order.ID,
		ProductID: "P1000",
		Title:     "Jaggery Powder 1kg",
		Price:     4.49,
		Quantity:  3,
	})
	createOrder(t, repo, order)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 2)

	titles := []string{got.Items[0].Title, got.Items[1].Title}
	assert.ElementsMatch(t, []string{"Jaggery Powder 500g", "Jaggery Powder 1kg"}, titles)
}
