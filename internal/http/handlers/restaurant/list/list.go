// Package list реализует HTTP-обработчик получения каталога ресторанов.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vip-marketplace/internal/http/response"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// Service описывает интерфейс слоя данных каталога.
type Service interface {
	Restaurants(ctx context.Context, limit, offset int) []*models.Restaurant
}

// Handler обрабатывает запросы на получение каталога ресторанов.
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
// @Summary Получить каталог ресторанов
// @Description Возвращает страницу каталога. При недоступном хранилище отдается демонстрационный набор.
// @Tags Restaurants
// @Produce  json
// @Param limit query int false "Размер страницы (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Страница каталога"
// @Router /restaurants [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.restaurant.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	res := h.service.Restaurants(r.Context(), limit, offset)

	log.Info("list restaurants", "count", len(res))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count":  len(res),
		"restaurants": res,
	}))
}
