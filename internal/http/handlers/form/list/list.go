// Package list реализует HTTP-обработчик получения заявок пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vip-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vip-marketplace/internal/http/response"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// Service описывает интерфейс слоя данных каталога.
type Service interface {
	Forms(ctx context.Context, userUID string) []*models.CategoryForm
}

// Handler обрабатывает запросы на получение заявок текущего пользователя.
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
// @Summary Получить заявки пользователя
// @Description Возвращает заявки текущего пользователя со статусами SMS-подтверждений, новые первыми.
// @Tags Forms
// @Produce  json
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /forms [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.form.list"

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

	res := h.service.Forms(r.Context(), userUID)

	log.Info("list forms", "count", len(res))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"forms":      res,
	}))
}
