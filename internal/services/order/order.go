// Package order содержит бизнес-логику оформления и сопровождения заказов.
//
// Цена каждой позиции фиксируется в момент создания заказа: последующие
// изменения цен каталога на сумму заказа не влияют. Складские остатки
// при оформлении заказа намеренно не списываются.
package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/metrics"
	"github.com/magabrotheeeer/storefront/internal/models"
	"github.com/magabrotheeeer/storefront/internal/rabbitmq"
)

// ErrProductUnavailable возвращается, если позиция заказа ссылается
// на отсутствующий или неактивный товар.
var ErrProductUnavailable = errors.New("product unavailable")

// ErrInvalidStatus возвращается при попытке установить неизвестный статус.
var ErrInvalidStatus = errors.New("invalid order status")

// Repository определяет методы хранилища, нужные сервису заказов.
type Repository interface {
	// GetProduct возвращает товар по ID, включая неактивные.
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	// CreateOrder сохраняет заказ с позициями и возвращает его ID.
	CreateOrder(ctx context.Context, order models.Order) (string, error)
	// GetOrder возвращает заказ с позициями.
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	// ListOrdersByUser возвращает заказы пользователя, новые первыми.
	ListOrdersByUser(ctx context.Context, userUID string) ([]*models.Order, error)
	// ListAllOrders возвращает все заказы с пагинацией.
	ListAllOrders(ctx context.Context, limit, offset int) ([]*models.Order, error)
	// UpdateOrderStatus перезаписывает статус заказа.
	UpdateOrderStatus(ctx context.Context, id, status string) error
}

// Service реализует бизнес-логику заказов.
type Service struct {
	repo      Repository
	publisher rabbitmq.Publisher
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, publisher rabbitmq.Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Create оформляет заказ: проверяет каждую позицию по каталогу,
// фиксирует текущие цены, сохраняет заказ одной транзакцией и публикует
// событие order.created.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyOrder) (*models.Order, error) {
	items := make([]models.OrderItem, 0, len(req.Items))
	var total float64
	for _, reqItem := range req.Items {
		product, err := s.repo.GetProduct(ctx, reqItem.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d: %w", ErrProductUnavailable, reqItem.ProductID, err)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: product %d is inactive", ErrProductUnavailable, reqItem.ProductID)
		}
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    reqItem.Quantity,
			UnitPrice:   product.Price,
		})
		total += product.Price * float64(reqItem.Quantity)
	}

	id, err := s.repo.CreateOrder(ctx, models.Order{
		UserUID:     userUID,
		Items:       items,
		TotalAmount: total,
		Status:      models.OrderStatusPending,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("created new order", slog.String("id", id), slog.String("user_uid", userUID))
	metrics.OrdersCreated.Inc()

	created, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(rabbitmq.RoutingKeyOrderCreated, rabbitmq.OrderEvent{
		OrderID:     created.ID,
		UserUID:     created.UserUID,
		Status:      created.Status,
		TotalAmount: created.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	}); err != nil {
		s.log.Warn("failed to publish order.created", sl.Err(err))
	}

	return created, nil
}

// ListMine возвращает заказы пользователя с позициями, новые первыми.
func (s *Service) ListMine(ctx context.Context, userUID string) ([]*models.Order, error) {
	return s.repo.ListOrdersByUser(ctx, userUID)
}

// ListAll возвращает все заказы с пагинацией, новые первыми.
func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	return s.repo.ListAllOrders(ctx, limit, offset)
}

// UpdateStatus меняет статус заказа и публикует событие order.status_changed.
// Переходы между статусами не ограничены, проверяется только само значение.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.log.Info("updated order status", slog.String("id", id), slog.String("status", status))

	updated, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(rabbitmq.RoutingKeyOrderStatusChanged, rabbitmq.OrderEvent{
		OrderID:     updated.ID,
		UserUID:     updated.UserUID,
		Status:      updated.Status,
		TotalAmount: updated.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	}); err != nil {
		s.log.Warn("failed to publish order.status_changed", sl.Err(err))
	}

	return updated, nil
}
