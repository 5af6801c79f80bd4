// Package metrics регистрирует счётчики Prometheus для бизнес-событий магазина.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UsersRegistered — количество успешных регистраций.
	UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_users_registered_total",
		Help: "Total number of registered users.",
	})

	// OrdersCreated — количество созданных заказов.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_created_total",
		Help: "Total number of created orders.",
	})
)
