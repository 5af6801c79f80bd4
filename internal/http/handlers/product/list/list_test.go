package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/storefront/internal/models"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Product), args.Int(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHandler_ServeHTTP(t *testing.T) {
	products := []*models.Product{
		{ID: 1, Name: "Laptop", Category: "electronics", IsActive: true},
	}

	tests := []struct {
		name       string
		target     string
		setupMocks func(s *ServiceMock)
		wantStatus int
	}{
		{
			name:   "passes query params to filter",
			target: "/api/v1/products?category=electronics&search=laptop&limit=10&offset=20",
			setupMocks: func(s *ServiceMock) {
				s.On("List", mock.Anything, models.ProductFilter{
					Category: "electronics",
					Search:   "laptop",
					Limit:    10,
					Offset:   20,
				}).Return(products, 1, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "malformed pagination falls back to defaults",
			target: "/api/v1/products?limit=abc&offset=-3",
			setupMocks: func(s *ServiceMock) {
				s.On("List", mock.Anything, models.ProductFilter{}).Return(products, 1, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "service failure",
			target: "/api/v1/products",
			setupMocks: func(s *ServiceMock) {
				s.On("List", mock.Anything, models.ProductFilter{}).
					Return(nil, 0, errors.New("db is down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMocks(service)
			handler := New(newNoopLogger(), service)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				data := body["data"].(map[string]any)
				assert.Equal(t, float64(1), data["total"])
			}
			service.AssertExpectations(t)
		})
	}
}
