// Package auth содержит бизнес-логику регистрации, входа и проверки токенов.
//
// Пароли хранятся только в виде bcrypt-хэшей. Токен — единственная
// серверная «сессия»: подписанный JWT с uid и ролью пользователя,
// списка отзыва нет, logout выполняется на клиенте.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/storefront/internal/lib/jwt"
	"github.com/magabrotheeeer/storefront/internal/lib/password"
	"github.com/magabrotheeeer/storefront/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Текст не различает «нет такого пользователя» и «неверный пароль».
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken возвращается, если токен не прошёл проверку или
// пользователь из токена больше не существует.
var ErrInvalidToken = errors.New("invalid or expired token")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и ролью customer,
// сразу выдаёт токен. Ошибка уникальности email поднимается из хранилища.
func (s *Service) Register(ctx context.Context, name, email, rawPassword string) (string, *models.User, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, err
	}
	user := models.User{
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: hashed,
		Role:         models.RoleCustomer,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", nil, err
	}

	created, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return "", nil, err
	}
	token, err := s.jwtMaker.GenerateToken(created.UID, created.Role)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Authenticate проверяет JWT и возвращает пользователя из хранилища.
// Токен с валидной подписью, но с несуществующим пользователем отклоняется.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return user, nil
}

// GetUser возвращает пользователя по UID.
func (s *Service) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
