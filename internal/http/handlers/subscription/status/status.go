// Package status реализует HTTP-обработчик получения статуса VIP-подписки.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vip-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vip-marketplace/internal/http/response"
	"github.com/magabrotheeeer/vip-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// Service описывает интерфейс бизнес-логики статуса подписки.
type Service interface {
	Status(ctx context.Context, userUID string) (models.SubscriptionStatus, error)
}

// Handler обрабатывает запросы на получение статуса подписки пользователя.
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
// @Summary Получить статус VIP-подписки
// @Description Возвращает активность подписки, оставшиеся дни и название тарифа для текущего пользователя.
// @Tags Subscriptions
// @Produce  json
// @Success 200 {object} map[string]any "Статус подписки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении статуса"
// @Router /subscriptions/current [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"
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

	res, err := h.service.Status(r.Context(), userUID)
	if err != nil {
		log.Error("failed to read subscription status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscription status"))
		return
	}

	log.Info("success to read subscription status", slog.Bool("is_active", res.IsActive))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": res,
	}))
}
