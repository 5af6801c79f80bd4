package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/storefront/internal/models"
	"github.com/magabrotheeeer/storefront/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) UpdateUserRole(ctx context.Context, userUID, role string) error {
	return m.Called(ctx, userUID, role).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_List_HidesPasswordHash(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())

	users := []*models.User{
		{UID: "uid-1", Name: "Alice", Email: "alice@example.com", PasswordHash: "secret-hash", Role: models.RoleAdmin},
		{UID: "uid-2", Name: "Bob", Email: "bob@example.com", PasswordHash: "another-hash", Role: models.RoleCustomer},
	}
	repo.On("ListUsers", mock.Anything, DefaultLimit, 0).Return(users, nil).Once()

	got, err := svc.List(context.Background(), 0, -5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "uid-1", got[0].UID)
	assert.Equal(t, models.RoleAdmin, got[0].Role)

	repo.AssertExpectations(t)
}

func TestService_UpdateRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "promote to admin",
			role: models.RoleAdmin,
			setupMocks: func(r *RepoMock) {
				r.On("UpdateUserRole", mock.Anything, "uid-1", models.RoleAdmin).Return(nil).Once()
				r.On("GetUser", mock.Anything, "uid-1").
					Return(&models.User{UID: "uid-1", Name: "Alice", Role: models.RoleAdmin}, nil).Once()
			},
		},
		{
			name:       "unknown role",
			role:       "superuser",
			setupMocks: func(r *RepoMock) {},
			wantErr:    ErrInvalidRole,
		},
		{
			name: "user not found",
			role: models.RoleCustomer,
			setupMocks: func(r *RepoMock) {
				r.On("UpdateUserRole", mock.Anything, "uid-1", models.RoleCustomer).
					Return(repository.ErrNotFound).Once()
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := New(repo, newNoopLogger())
			tt.setupMocks(repo)

			got, err := svc.UpdateRole(context.Background(), "uid-1", tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.role, got.Role)
			}

			repo.AssertExpectations(t)
		})
	}
}
