package storefront

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/storefront/internal/cache"
	"github.com/magabrotheeeer/storefront/internal/config"
	"github.com/magabrotheeeer/storefront/internal/lib/jwt"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/migrations"
	"github.com/magabrotheeeer/storefront/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/storefront/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/storefront/internal/services/catalog"
	orderservice "github.com/magabrotheeeer/storefront/internal/services/order"
	userservice "github.com/magabrotheeeer/storefront/internal/services/user"
	"github.com/magabrotheeeer/storefront/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер магазина и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New собирает приложение: базу, кеш, брокер событий, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var publisher rabbitmq.Publisher = rabbitmq.NoopPublisher{}
	if cfg.RabbitMQConnection != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQConnection, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn)
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewChannelPublisher(ch)
	} else {
		logger.Warn("rabbitmq connection is not configured, order events will not be published")
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	auth := authservice.New(db, jwtMaker)
	catalog := catalogservice.New(db, cacheRedis, logger)
	orders := orderservice.New(db, publisher, logger)
	users := userservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, auth, catalog, orders, users)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста
// или ошибки сервера. При отмене контекста выполняет graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		return err
	}
}
