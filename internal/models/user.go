// Package models содержит доменные структуры магазина: пользователей,
// товары каталога и заказы. Структуры используются в бизнес‑логике
// и при работе с хранилищем.
package models

import "time"

// Роли пользователей. Новые пользователи всегда получают RoleCustomer,
// роль admin назначается только другим администратором.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// ValidRole сообщает, является ли строка допустимой ролью пользователя.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}

// User представляет зарегистрированного пользователя магазина.
// PasswordHash никогда не сериализуется в ответы API.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Name         string    // Отображаемое имя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    `json:"-"` // Хэш пароля пользователя, в JSON не попадает
	Role         string    // Роль пользователя: customer или admin
	CreatedAt    time.Time // Дата регистрации
}

// PublicUser содержит только те поля пользователя, которые можно
// возвращать наружу.
type PublicUser struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Public конвертирует User в PublicUser, отбрасывая хэш пароля.
func (u *User) Public() PublicUser {
	return PublicUser{
		UID:       u.UID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// IsAdmin — единая точка проверки роли для закрытых админских операций.
// Обработчики не должны сравнивать u.Role со строками напрямую.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
