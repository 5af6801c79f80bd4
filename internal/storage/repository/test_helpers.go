package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/storefront/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, name, email, passwordHash, role string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4) RETURNING uid`,
		name, email, passwordHash, role).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateProduct создает тестовый товар и возвращает его ID
func (f *TestDataFactory) CreateProduct(t *testing.T, name, description string, price float64,
	category string, stock int, isActive bool) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO products
		(name, description, price, category, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		name, description, price, category, stock, isActive).Scan(&id)
	require.NoError(t, err)
	return id
}

// GetTestProductData возвращает стандартные тестовые данные товара
func GetTestProductData() models.Product {
	return models.Product{
		Name:        "Test Laptop",
		Description: "Lightweight laptop for tests",
		Price:       999.99,
		Category:    "electronics",
		Subcategory: "laptops",
		Brand:       "Acme",
		Images:      []string{"https://example.com/laptop.png"},
		Stock:       10,
		Specifications: map[string]string{
			"cpu": "8 cores",
			"ram": "16GB",
		},
		Features: []string{"backlit keyboard"},
		IsActive: true,
	}
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyUserExists проверяет существование пользователя в БД
func (v *TestVerification) VerifyUserExists(t *testing.T, userUID string) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE uid = $1", userUID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyProductActive проверяет значение флага is_active товара
func (v *TestVerification) VerifyProductActive(t *testing.T, productID int, expected bool) {
	var isActive bool
	err := v.storage.DB.QueryRow("SELECT is_active FROM products WHERE id = $1", productID).Scan(&isActive)
	require.NoError(t, err)
	require.Equal(t, expected, isActive)
}

// VerifyOrderItemsCount проверяет число позиций заказа в БД
func (v *TestVerification) VerifyOrderItemsCount(t *testing.T, orderID string, expected int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM order_items WHERE order_id = $1", orderID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expected, count)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	_, err = storage.DB.Exec(`
        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE products (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL,
            price NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
            category TEXT NOT NULL,
            subcategory TEXT NOT NULL DEFAULT '',
            brand TEXT NOT NULL DEFAULT '',
            images JSONB NOT NULL DEFAULT 'null',
            stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
            specifications JSONB NOT NULL DEFAULT 'null',
            features JSONB NOT NULL DEFAULT 'null',
            is_active BOOLEAN NOT NULL DEFAULT true,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE orders (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_uid UUID NOT NULL REFERENCES users (uid),
            total_amount NUMERIC(12, 2) NOT NULL CHECK (total_amount >= 0),
            status TEXT NOT NULL DEFAULT 'pending',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE order_items (
            id SERIAL PRIMARY KEY,
            order_id UUID NOT NULL REFERENCES orders (id),
            product_id INTEGER NOT NULL REFERENCES products (id),
            product_name TEXT NOT NULL,
            quantity INTEGER NOT NULL CHECK (quantity > 0),
            unit_price NUMERIC(12, 2) NOT NULL CHECK (unit_price >= 0)
        );

        CREATE INDEX idx_products_category ON products (category) WHERE is_active = true;
        CREATE INDEX idx_orders_user_uid ON orders (user_uid);
        CREATE INDEX idx_order_items_order_id ON order_items (order_id);
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
