// Package user содержит административную логику управления пользователями.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/storefront/internal/models"
)

// DefaultLimit применяется, если клиент не указал limit.
const DefaultLimit = 50

// ErrInvalidRole возвращается при попытке назначить неизвестную роль.
var ErrInvalidRole = errors.New("invalid role")

// Repository определяет методы хранилища, нужные сервису пользователей.
type Repository interface {
	// ListUsers возвращает пользователей с пагинацией.
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// UpdateUserRole меняет роль пользователя.
	UpdateUserRole(ctx context.Context, userUID, role string) error
}

// Service реализует административные операции над пользователями.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// List возвращает публичные данные пользователей с пагинацией.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.PublicUser, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.repo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		result = append(result, u.Public())
	}
	return result, nil
}

// UpdateRole меняет роль пользователя и возвращает обновлённые данные.
// Учётные записи никогда не удаляются.
func (s *Service) UpdateRole(ctx context.Context, userUID, role string) (*models.PublicUser, error) {
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if err := s.repo.UpdateUserRole(ctx, userUID, role); err != nil {
		return nil, err
	}
	s.log.Info("updated user role", slog.String("user_uid", userUID), slog.String("role", role))

	updated, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	pub := updated.Public()
	return &pub, nil
}
