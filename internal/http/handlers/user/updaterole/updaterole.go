// Package updaterole реализует административный HTTP-обработчик смены роли пользователя.
package updaterole

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/storefront/internal/http/response"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
	"github.com/magabrotheeeer/storefront/internal/models"
	userservice "github.com/magabrotheeeer/storefront/internal/services/user"
	"github.com/magabrotheeeer/storefront/internal/storage/repository"
)

// Request — входные данные для смены роли.
type Request struct {
	Role string `json:"role" validate:"required"`
}

// Service описывает интерфейс бизнес-логики смены роли.
type Service interface {
	UpdateRole(ctx context.Context, userUID, role string) (*models.PublicUser, error)
}

// Handler обрабатывает запросы на смену роли пользователя.
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

// ServeHTTP обрабатывает HTTP-запрос на смену роли пользователя.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.updaterole"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")

	var req Request
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

	user, err := h.service.UpdateRole(r.Context(), uid, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrInvalidRole):
			log.Error("invalid role", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid role"))
		case errors.Is(err, repository.ErrNotFound):
			log.Error("user not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to update role", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update role"))
		}
		return
	}

	log.Info("user role updated", slog.String("uid", uid), slog.String("role", req.Role))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": user,
	}))
}
