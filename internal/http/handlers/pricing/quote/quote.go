// Package quote реализует HTTP-обработчик расчета цены с VIP-скидкой.
package quote

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vip-marketplace/internal/http/response"
	"github.com/magabrotheeeer/vip-marketplace/internal/lib/pricing"
)

// Service описывает интерфейс сервиса расчета VIP-цены.
type Service interface {
	Quote(basePrice int) pricing.Split
}

// Handler обрабатывает запросы на расчет цены со скидкой.
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
// @Summary Рассчитать цену с VIP-скидкой
// @Description Возвращает раскладку цены: обычную, VIP и размер экономии.
// @Tags Pricing
// @Produce  json
// @Param amount query int true "Базовая цена в рупиях"
// @Success 200 {object} map[string]any "Раскладка цены"
// @Failure 400 {object} response.Response "Некорректная цена"
// @Router /pricing/quote [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pricing.quote"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	amount, err := strconv.Atoi(r.URL.Query().Get("amount"))
	if err != nil || amount <= 0 {
		log.Error("invalid amount query param")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("amount must be a positive integer"))
		return
	}

	res := h.service.Quote(amount)

	log.Info("price quote computed", "normal", res.Normal, "vip", res.VIP)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"pricing": res,
	}))
}
