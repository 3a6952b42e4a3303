// Package list реализует HTTP-обработчик получения отзывов ресторана.
package list

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
	Reviews(ctx context.Context, restaurantID string) []*models.RestaurantReview
}

// Handler обрабатывает запросы на получение отзывов ресторана.
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
// @Summary Получить отзывы ресторана
// @Description Возвращает отзывы ресторана, новые первыми.
// @Tags Reviews
// @Produce  json
// @Param id path string true "UUID ресторана"
// @Success 200 {object} map[string]any "Список отзывов"
// @Router /restaurants/{id}/reviews [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	restaurantID := chi.URLParam(r, "id")
	if restaurantID == "" {
		log.Error("missing restaurant id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	res := h.service.Reviews(r.Context(), restaurantID)

	log.Info("list reviews", "count", len(res))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"reviews":    res,
	}))
}
