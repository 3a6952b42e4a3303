// Package list реализует HTTP-обработчик получения каталога VIP-тарифов.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vip-marketplace/internal/http/response"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога тарифов.
type Service interface {
	ListPlans() []models.SubscriptionPlan
}

// Handler обрабатывает запросы на получение каталога тарифов.
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
// @Summary Получить каталог VIP-тарифов
// @Description Возвращает список доступных тарифов подписки.
// @Tags Plans
// @Produce  json
// @Success 200 {object} map[string]any "Каталог тарифов"
// @Router /subscriptions/plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans := h.service.ListPlans()

	log.Info("list plans", "count", len(plans))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": plans,
	}))
}
