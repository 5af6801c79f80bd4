package models

import "time"

// Product представляет товар каталога. Категория — произвольная строка,
// удаление товара всегда мягкое: is_active=false убирает товар из
// публичных выборок, запись остаётся в базе.
type Product struct {
	ID             int               `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	Category       string            `json:"category"`
	Subcategory    string            `json:"subcategory,omitempty"`
	Brand          string            `json:"brand,omitempty"`
	Images         []string          `json:"images,omitempty"`
	Stock          int               `json:"stock"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Features       []string          `json:"features,omitempty"`
	IsActive       bool              `json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// DummyProduct используется для приёма данных товара из JSON-запроса
// на создание, прежде чем конвертировать их в Product.
type DummyProduct struct {
	Name           string            `json:"name" validate:"required,min=2,max=200"`
	Description    string            `json:"description" validate:"required"`
	Price          float64           `json:"price" validate:"min=0"`
	Category       string            `json:"category" validate:"required"`
	Subcategory    string            `json:"subcategory,omitempty"`
	Brand          string            `json:"brand,omitempty"`
	Images         []string          `json:"images,omitempty"`
	Stock          int               `json:"stock" validate:"min=0"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Features       []string          `json:"features,omitempty"`
}

// UpdateProduct описывает частичное обновление товара: nil-поле
// означает «оставить как есть».
type UpdateProduct struct {
	Name           *string            `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description    *string            `json:"description,omitempty"`
	Price          *float64           `json:"price,omitempty" validate:"omitempty,min=0"`
	Category       *string            `json:"category,omitempty"`
	Subcategory    *string            `json:"subcategory,omitempty"`
	Brand          *string            `json:"brand,omitempty"`
	Images         *[]string          `json:"images,omitempty"`
	Stock          *int               `json:"stock,omitempty" validate:"omitempty,min=0"`
	Specifications *map[string]string `json:"specifications,omitempty"`
	Features       *[]string          `json:"features,omitempty"`
}

// ProductFilter — параметры публичной выборки каталога.
type ProductFilter struct {
	Category string // Точное совпадение категории, пустая строка — без фильтра
	Search   string // Подстрока по имени и описанию без учёта регистра
	Limit    int
	Offset   int
}
