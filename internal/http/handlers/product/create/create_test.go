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

	"github.com/magabrotheeeer/storefront/internal/models"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Create(ctx context.Context, req models.DummyProduct) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

func (m *ServiceMock) Get(ctx context.Context, id int) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHandler_ServeHTTP(t *testing.T) {
	created := &models.Product{
		ID:       1,
		Name:     "Laptop",
		Price:    1000,
		Category: "electronics",
		IsActive: true,
	}

	tests := []struct {
		name       string
		body       string
		setupMocks func(s *ServiceMock)
		wantStatus int
		wantCalled bool
	}{
		{
			name: "success",
			body: `{"name":"Laptop","description":"Thin and light","price":1000,"category":"electronics","stock":5}`,
			setupMocks: func(s *ServiceMock) {
				s.On("Create", mock.Anything, mock.MatchedBy(func(p models.DummyProduct) bool {
					return p.Name == "Laptop" && p.Price == 1000
				})).Return(1, nil).Once()
				s.On("Get", mock.Anything, 1).Return(created, nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantCalled: true,
		},
		{
			name:       "invalid json",
			body:       `{"name":`,
			setupMocks: func(s *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative price",
			body:       `{"name":"Laptop","description":"Thin and light","price":-5,"category":"electronics"}`,
			setupMocks: func(s *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "missing name",
			body:       `{"description":"Thin and light","price":1000,"category":"electronics"}`,
			setupMocks: func(s *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "negative stock",
			body:       `{"name":"Laptop","description":"Thin and light","price":1000,"category":"electronics","stock":-1}`,
			setupMocks: func(s *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMocks(service)
			handler := New(newNoopLogger(), service)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				data := body["data"].(map[string]any)
				product := data["product"].(map[string]any)
				assert.Equal(t, "Laptop", product["name"])
				assert.Equal(t, true, product["is_active"])
			}
			if !tt.wantCalled {
				service.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
			service.AssertExpectations(t)
		})
	}
}
