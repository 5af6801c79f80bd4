package models

import "time"

// Статусы заказа. Переходы между статусами не ограничены:
// администратор может перевести заказ из любого статуса в любой.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus сообщает, является ли строка допустимым статусом заказа.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem — позиция заказа. UnitPrice фиксируется в момент создания
// заказа и не меняется при последующих изменениях цены товара.
type OrderItem struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Order представляет заказ пользователя. Заказы никогда не удаляются,
// администратор может менять только статус.
type Order struct {
	ID          string      `json:"id"`
	UserUID     string      `json:"user_uid"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DummyOrderItem используется для приёма позиции заказа из JSON-запроса.
type DummyOrderItem struct {
	ProductID int `json:"product_id" validate:"required"`
	Quantity  int `json:"quantity" validate:"required,gt=0"`
}

// DummyOrder используется для приёма данных нового заказа из JSON-запроса.
type DummyOrder struct {
	Items []DummyOrderItem `json:"items" validate:"required,min=1,dive"`
}
