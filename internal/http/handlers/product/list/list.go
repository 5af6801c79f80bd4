// Package list реализует публичный HTTP-обработчик выборки каталога.
//
// Поддерживает фильтр по точному совпадению категории и поиск подстроки
// по имени и описанию без учёта регистра. Возвращаются только активные
// товары, новые первыми.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/storefront/internal/http/response"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/models"
)

// Service описывает интерфейс бизнес-логики выборки каталога.
type Service interface {
	List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error)
}

// Handler обрабатывает запросы списка товаров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список товаров
// @Description Возвращает активные товары каталога с фильтром по категории и поиском.
// @Tags Products
// @Produce  json
// @Param category query string false "Точное совпадение категории"
// @Param search query string false "Подстрока по имени и описанию"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список товаров"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 0
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := models.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Limit:    limit,
		Offset:   offset,
	}

	products, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list products"))
		return
	}

	log.Info("list products", slog.Int("count", len(products)), slog.Int("total", total))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"products": products,
		"total":    total,
	}))
}
