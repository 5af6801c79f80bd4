// Package create реализует HTTP-обработчик оформления заказа.
//
// Заказ создаётся от имени аутентифицированного пользователя, цены позиций
// фиксируются на момент оформления. Позиция, ссылающаяся на отсутствующий
// или снятый с публикации товар, отклоняет весь заказ.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/storefront/internal/http/response"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/models"
	orderservice "github.com/magabrotheeeer/storefront/internal/services/order"
)

// Service описывает интерфейс бизнес-логики оформления заказа.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyOrder) (*models.Order, error)
}

// Handler управляет HTTP-запросами на оформление заказов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оформить заказ
// @Description Создаёт заказ для текущего пользователя, фиксируя цены позиций.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Param request body models.DummyOrder true "Позиции заказа"
// @Success 201 {object} map[string]any "Заказ создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или недоступный товар"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /orders [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	order, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, orderservice.ErrProductUnavailable) {
			log.Error("order references unavailable product", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("order references unavailable product"))
			return
		}
		log.Error("failed to create order", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create order"))
		return
	}

	log.Info("order created", slog.String("id", order.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"order": order,
	}))
}
