package create

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/storefront/internal/models"
	orderservice "github.com/magabrotheeeer/storefront/internal/services/order"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Create(ctx context.Context, userUID string, req models.DummyOrder) (*models.Order, error) {
	args := m.Called(ctx, userUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHandler_ServeHTTP(t *testing.T) {
	order := &models.Order{
		ID:          "order-1",
		UserUID:     "uid-1",
		Status:      models.OrderStatusPending,
		TotalAmount: 2000,
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Laptop", Quantity: 2, UnitPrice: 1000},
		},
	}

	tests := []struct {
		name       string
		body       string
		userUID    string
		setupMocks func(s *ServiceMock)
		wantStatus int
	}{
		{
			name:    "success",
			body:    `{"items":[{"product_id":1,"quantity":2}]}`,
			userUID: "uid-1",
			setupMocks: func(s *ServiceMock) {
				s.On("Create", mock.Anything, "uid-1", mock.MatchedBy(func(o models.DummyOrder) bool {
					return len(o.Items) == 1 && o.Items[0].ProductID == 1 && o.Items[0].Quantity == 2
				})).Return(order, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid json",
			body:       `{"items":`,
			userUID:    "uid-1",
			setupMocks: func(s *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty items",
			body:       `{"items":[]}`,
			userUID:    "uid-1",
			setupMocks: func(s *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "zero quantity",
			body:       `{"items":[{"product_id":1,"quantity":0}]}`,
			userUID:    "uid-1",
			setupMocks: func(s *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "no user in context",
			body:       `{"items":[{"product_id":1,"quantity":1}]}`,
			setupMocks: func(s *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "unavailable product",
			body:    `{"items":[{"product_id":99,"quantity":1}]}`,
			userUID: "uid-1",
			setupMocks: func(s *ServiceMock) {
				s.On("Create", mock.Anything, "uid-1", mock.Anything).
					Return(nil, orderservice.ErrProductUnavailable).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMocks(service)
			handler := New(newNoopLogger(), service)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(tt.body))
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				data := body["data"].(map[string]any)
				got := data["order"].(map[string]any)
				assert.Equal(t, "order-1", got["id"])
				assert.Equal(t, float64(2000), got["total_amount"])
			}
			service.AssertExpectations(t)
		})
	}
}
