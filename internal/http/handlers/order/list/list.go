// Package list реализует HTTP-обработчики выборки заказов: собственных
// заказов пользователя и всех заказов для административной панели.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/storefront/internal/http/response"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/models"
)

// Service описывает интерфейс бизнес-логики выборки заказов.
type Service interface {
	ListMine(ctx context.Context, userUID string) ([]*models.Order, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Order, error)
}

// MineHandler возвращает заказы текущего пользователя, новые первыми.
type MineHandler struct {
	log     *slog.Logger
	service Service
}

// NewMine создает новый MineHandler.
func NewMine(log *slog.Logger, service Service) *MineHandler {
	return &MineHandler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает запрос списка собственных заказов.
func (h *MineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.list.mine"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	orders, err := h.service.ListMine(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list orders"))
		return
	}

	log.Info("list orders", slog.Int("count", len(orders)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"orders": orders,
	}))
}

// AllHandler возвращает все заказы магазина. Только для администраторов.
type AllHandler struct {
	log     *slog.Logger
	service Service
}

// NewAll создает новый AllHandler.
func NewAll(log *slog.Logger, service Service) *AllHandler {
	return &AllHandler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает административный запрос списка всех заказов.
func (h *AllHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.list.all"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	orders, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list orders"))
		return
	}

	log.Info("list all orders", slog.Int("count", len(orders)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"orders": orders,
	}))
}
