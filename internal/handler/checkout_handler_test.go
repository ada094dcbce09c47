package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jaggery-store/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

func (m *MockCheckoutService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func checkoutBody() *model.CheckoutRequest {
	return &model.CheckoutRequest{
		Name:          "Asha Kumar",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		AddressLine:   "12 Market Road",
		City:          "Pune",
		Pincode:       "411001",
		PaymentMethod: model.PaymentMethodCard,
		Cart:          []model.CartItem{{ProductID: "P1000", Quantity: 3}},
	}
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	logger := zerolog.Nop()

	orderID := uuid.NewString()
	success := &model.CheckoutResponse{
		OrderID: orderID,
		Total:   13.47,
		Status:  model.OrderStatusPaid,
		Payment: &model.PaymentInfo{Provider: "mock", Status: "succeeded", TransactionID: orderID},
	}

	tests := []struct {
		name           string
		method         string
		body           interface{}
		rawBody        string
		mockReturn     *model.CheckoutResponse
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			method:         http.MethodPost,
			body:           checkoutBody(),
			mockReturn:     success,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Product not found",
			method:         http.MethodPost,
			body:           checkoutBody(),
			mockError:      model.NewProductNotFoundError("P999"),
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid payment method",
			method:         http.MethodPost,
			body:           checkoutBody(),
			mockError:      model.ErrInvalidPaymentMethod,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Invalid quantity",
			method:         http.MethodPost,
			body:           checkoutBody(),
			mockError:      model.ErrInvalidQuantity,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Store failure",
			method:         http.MethodPost,
			body:           checkoutBody(),
			mockError:      errors.New("store unavailable"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
		{
			name:           "Malformed JSON",
			method:         http.MethodPost,
			rawBody:        "{not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodGet,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCheckoutService)
			if tt.expectService {
				mockService.On("Checkout", mock.Anything, mock.AnythingOfType("*model.CheckoutRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			var body bytes.Buffer
			if tt.rawBody != "" {
				body.WriteString(tt.rawBody)
			} else if tt.body != nil {
				require.NoError(t, json.NewEncoder(&body).Encode(tt.body))
			}

			h := NewCheckoutHandler(mockService, logger)

			req := httptest.NewRequest(tt.method, "/checkout", &body)
			rec := httptest.NewRecorder()

			h.Checkout(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusCreated {
				var got model.CheckoutResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, orderID, got.OrderID)
				assert.InDelta(t, 13.47, got.Total, 1e-9)
				require.NotNil(t, got.Payment)
				assert.Equal(t, orderID, got.Payment.TransactionID)
			}
		})
	}
}

func TestCheckoutHandler_Checkout_NotFoundMessageNamesProduct(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCheckoutService)
	mockService.On("Checkout", mock.Anything, mock.Anything).
		Return(nil, model.NewProductNotFoundError("abc123"))

	h := NewCheckoutHandler(mockService, logger)

	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(checkoutBody()))

	req := httptest.NewRequest(http.MethodPost, "/checkout", &body)
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, model.ErrCodeProductNotFound, got.Error)
	assert.Equal(t, "Product abc123 not found", got.Message)
}

func TestCheckoutHandler_GetOrder(t *testing.T) {
	logger := zerolog.Nop()

	orderID := uuid.New()
	stored := &model.Order{
		ID:     orderID,
		Status: model.OrderStatusPending,
		Items: []model.OrderItem{
			{ProductID: "P500", Title: "Jaggery Powder 500g", Price: 2.49, Quantity: 2},
		},
	}

	tests := []struct {
		name           string
		path           string
		mockID         uuid.UUID
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			path:           "/orders/" + orderID.String(),
			mockID:         orderID,
			mockReturn:     stored,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Not found",
			path:           "/orders/" + uuid.NewString(),
			mockReturn:     nil,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid ID format",
			path:           "/orders/not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Store failure",
			path:           "/orders/" + uuid.NewString(),
			mockError:      errors.New("store unavailable"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCheckoutService)
			if tt.expectService {
				mockService.On("GetOrder", mock.Anything, mock.AnythingOfType("uuid.UUID")).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewCheckoutHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			h.GetOrder(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var got model.Order
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, orderID, got.ID)
				require.Len(t, got.Items, 1)
				assert.Equal(t, "Jaggery Powder 500g", got.Items[0].Title)
			}
		})
	}
}
