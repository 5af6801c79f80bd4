package me

import (
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
	"github.com/magabrotheeeer/storefront/internal/storage/repository"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHandler_ServeHTTP(t *testing.T) {
	user := &models.User{
		UID:          "uid-1",
		Name:         "A",
		Email:        "a@x.com",
		PasswordHash: "secret-hash",
		Role:         models.RoleCustomer,
	}

	tests := []struct {
		name       string
		userUID    string
		setupMocks func(s *ServiceMock)
		wantStatus int
	}{
		{
			name:    "success",
			userUID: "uid-1",
			setupMocks: func(s *ServiceMock) {
				s.On("GetUser", mock.Anything, "uid-1").Return(user, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "no user in context",
			setupMocks: func(s *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "user gone",
			userUID: "uid-2",
			setupMocks: func(s *ServiceMock) {
				s.On("GetUser", mock.Anything, "uid-2").Return(nil, repository.ErrNotFound).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMocks(service)
			handler := New(newNoopLogger(), service)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				data := body["data"].(map[string]any)
				got := data["user"].(map[string]any)
				assert.Equal(t, "A", got["name"])
				assert.Equal(t, "a@x.com", got["email"])
				assert.Equal(t, models.RoleCustomer, got["role"])
				assert.NotContains(t, got, "password_hash")
			}
			service.AssertExpectations(t)
		})
	}
}
