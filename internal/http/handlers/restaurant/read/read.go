// Package read реализует HTTP-обработчик получения карточки ресторана по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vip-marketplace/internal/http/response"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// Service описывает интерфейс слоя данных каталога.
type Service interface {
	Restaurant(ctx context.Context, id string) *models.Restaurant
}

// Handler обрабатывает запросы на получение ресторана по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить карточку ресторана
// @Description Возвращает ресторан по идентификатору.
// @Tags Restaurants
// @Produce  json
// @Param id path string true "UUID ресторана"
// @Success 200 {object} map[string]any "Карточка ресторана"
// @Failure 404 {object} response.ErrorResponse "Ресторан не найден"
// @Router /restaurants/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.restaurant.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing restaurant id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	res := h.service.Restaurant(r.Context(), id)
	if res == nil {
		log.Error("restaurant not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("restaurant not found"))
		return
	}

	log.Info("success to read restaurant", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"restaurant": res,
	}))
}
