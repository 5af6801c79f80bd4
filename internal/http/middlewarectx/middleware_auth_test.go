package middlewarectx

import (
	"context"
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

type AuthenticatorMock struct{ mock.Mock }

func (m *AuthenticatorMock) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{UID: "uid-1", Name: "Alice", Role: models.RoleCustomer}

	tests := []struct {
		name       string
		authHeader string
		setupMocks func(a *AuthenticatorMock)
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "missing header",
			authHeader: "",
			setupMocks: func(a *AuthenticatorMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong prefix",
			authHeader: "Basic abc123",
			setupMocks: func(a *AuthenticatorMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			setupMocks: func(a *AuthenticatorMock) {
				a.On("Authenticate", mock.Anything, "bad-token").
					Return(nil, errors.New("token is malformed")).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			setupMocks: func(a *AuthenticatorMock) {
				a.On("Authenticate", mock.Anything, "good-token").Return(user, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(AuthenticatorMock)
			tt.setupMocks(auth)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "uid-1", r.Context().Value(UserUID))
				assert.Equal(t, "Alice", r.Context().Value(UserName))
				assert.Equal(t, models.RoleCustomer, r.Context().Value(Role))
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(auth, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			auth.AssertExpectations(t)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		role       any
		wantStatus int
		wantNext   bool
	}{
		{name: "admin passes", role: models.RoleAdmin, wantStatus: http.StatusOK, wantNext: true},
		{name: "customer rejected", role: models.RoleCustomer, wantStatus: http.StatusForbidden},
		{name: "no role in context", role: nil, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := AdminMiddleware(newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
			if tt.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), Role, tt.role))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}
