package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// OrderEvent — тело события заказа, публикуемого в exchange.
type OrderEvent struct {
	OrderID     string    `json:"order_id"`
	UserUID     string    `json:"user_uid"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher публикует события заказов. Интерфейс позволяет подменять
// публикацию в тестах и отключать её, если брокер не сконфигурирован.
type Publisher interface {
	Publish(routingKey string, event OrderEvent) error
}

// ChannelPublisher публикует события через канал AMQP.
type ChannelPublisher struct {
	ch *amqp.Channel
}

// NewChannelPublisher создаёт Publisher поверх открытого канала AMQP.
func NewChannelPublisher(ch *amqp.Channel) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Publish сериализует событие в JSON и публикует его в exchange заказов.
func (p *ChannelPublisher) Publish(routingKey string, event OrderEvent) error {
	const op = "rabbitmq.Publish"
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// NoopPublisher используется, когда брокер не сконфигурирован.
type NoopPublisher struct{}

// Publish ничего не делает.
func (NoopPublisher) Publish(string, OrderEvent) error { return nil }
