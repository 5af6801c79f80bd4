// Package storefront собирает HTTP-приложение магазина: маршруты,
// middleware и жизненный цикл сервера.
package storefront

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	loginhandler "github.com/magabrotheeeer/storefront/internal/http/handlers/auth/login"
	mehandler "github.com/magabrotheeeer/storefront/internal/http/handlers/auth/me"
	registerhandler "github.com/magabrotheeeer/storefront/internal/http/handlers/auth/register"
	healthhandler "github.com/magabrotheeeer/storefront/internal/http/handlers/health"
	ordercreate "github.com/magabrotheeeer/storefront/internal/http/handlers/order/create"
	orderlist "github.com/magabrotheeeer/storefront/internal/http/handlers/order/list"
	orderupdatestatus "github.com/magabrotheeeer/storefront/internal/http/handlers/order/updatestatus"
	productcreate "github.com/magabrotheeeer/storefront/internal/http/handlers/product/create"
	productlist "github.com/magabrotheeeer/storefront/internal/http/handlers/product/list"
	productread "github.com/magabrotheeeer/storefront/internal/http/handlers/product/read"
	productremove "github.com/magabrotheeeer/storefront/internal/http/handlers/product/remove"
	productupdate "github.com/magabrotheeeer/storefront/internal/http/handlers/product/update"
	userlist "github.com/magabrotheeeer/storefront/internal/http/handlers/user/list"
	userupdaterole "github.com/magabrotheeeer/storefront/internal/http/handlers/user/updaterole"
	"github.com/magabrotheeeer/storefront/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/storefront/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/storefront/internal/services/catalog"
	orderservice "github.com/magabrotheeeer/storefront/internal/services/order"
	userservice "github.com/magabrotheeeer/storefront/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Публичные маршруты — каталог и аутентификация. Всё под /orders и /auth/me
// требует валидного токена, административные маршруты дополнительно
// проходят через AdminMiddleware — в том числе все операции записи каталога.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	auth *authservice.Service,
	catalog *catalogservice.Service,
	orders *orderservice.Service,
	users *userservice.Service,
) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", registerhandler.New(logger, auth).ServeHTTP)
		r.Post("/auth/login", loginhandler.New(logger, auth).ServeHTTP)
		r.Get("/products", productlist.New(logger, catalog).ServeHTTP)
		r.Get("/products/{id}", productread.New(logger, catalog).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/auth/me", mehandler.New(logger, auth).ServeHTTP)
			r.Post("/orders", ordercreate.New(logger, orders).ServeHTTP)
			r.Get("/orders/my-orders", orderlist.NewMine(logger, orders).ServeHTTP)

			// Административная группа
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(logger))
				r.Post("/products", productcreate.New(logger, catalog).ServeHTTP)
				r.Put("/products/{id}", productupdate.New(logger, catalog).ServeHTTP)
				r.Delete("/products/{id}", productremove.New(logger, catalog).ServeHTTP)
				r.Get("/orders", orderlist.NewAll(logger, orders).ServeHTTP)
				r.Put("/orders/{id}/status", orderupdatestatus.New(logger, orders).ServeHTTP)
				r.Get("/users", userlist.New(logger, users).ServeHTTP)
				r.Put("/users/{uid}/role", userupdaterole.New(logger, users).ServeHTTP)
			})
		})
	})

	r.Get("/health", healthhandler.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
