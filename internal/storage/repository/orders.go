package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/storefront/internal/models"
)

// CreateOrder сохраняет заказ вместе с позициями в одной транзакции
// и возвращает ID заказа.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) (string, error) {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID string
	query := `INSERT INTO orders (user_uid, total_amount, status)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		order.UserUID, order.TotalAmount, order.Status).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	itemQuery := `INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price)
			  VALUES ($1, $2, $3, $4, $5)`
	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx, itemQuery,
			newID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetOrder возвращает заказ с позициями по его ID.
func (s *Storage) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	const op = "storage.GetOrder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, total_amount, status, created_at, updated_at
			  FROM orders
			  WHERE id = $1`
	var order models.Order
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&order.ID, &order.UserUID, &order.TotalAmount,
		&order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, wrapRowError(op, err)
	}
	items, err := s.listOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	order.Items = items
	return &order, nil
}

// ListOrdersByUser возвращает заказы пользователя с позициями, новые первыми.
func (s *Storage) ListOrdersByUser(ctx context.Context, userUID string) ([]*models.Order, error) {
	const op = "storage.ListOrdersByUser"
	query := `SELECT id, user_uid, total_amount, status, created_at, updated_at
			  FROM orders
			  WHERE user_uid = $1
			  ORDER BY created_at DESC, id DESC`
	return s.listOrders(ctx, op, query, userUID)
}

// ListAllOrders возвращает все заказы с пагинацией, новые первыми.
func (s *Storage) ListAllOrders(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	const op = "storage.ListAllOrders"
	query := `SELECT id, user_uid, total_amount, status, created_at, updated_at
			  FROM orders
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1 OFFSET $2`
	return s.listOrders(ctx, op, query, limit, offset)
}

func (s *Storage) listOrders(ctx context.Context, op, query string, args ...any) ([]*models.Order, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Order
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.UserUID, &order.TotalAmount,
			&order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, order := range result {
		items, err := s.listOrderItems(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		order.Items = items
	}
	return result, nil
}

func (s *Storage) listOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	const op = "storage.listOrderItems"
	query := `SELECT product_id, product_name, quantity, unit_price
			  FROM order_items
			  WHERE order_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// UpdateOrderStatus безусловно перезаписывает статус заказа.
// Допустимость значения статуса проверяет сервис заказов.
func (s *Storage) UpdateOrderStatus(ctx context.Context, id, status string) error {
	const op = "storage.UpdateOrderStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE orders
			  SET status = $1, updated_at = now()
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
