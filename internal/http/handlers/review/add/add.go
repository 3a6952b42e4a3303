// Package add реализует HTTP-обработчик добавления отзыва о ресторане.
//
// Handler принимает JSON-запрос с оценкой и текстом, валидирует их,
// извлекает uid пользователя из контекста, сохраняет отзыв через слой данных
// и возвращает ID созданной записи в JSON-формате.
package add

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/vip-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vip-marketplace/internal/http/response"
	"github.com/magabrotheeeer/vip-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// Service описывает интерфейс слоя данных для записи отзыва.
type Service interface {
	AddReview(ctx context.Context, restaurantID, userUID string, req models.DummyReview) (string, error)
}

// Handler управляет HTTP-запросами на добавление отзыва.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Слой данных каталога
	validate *validator.Validate // Валидатор структуры входящих данных
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
// @Summary Добавить отзыв о ресторане
// @Description Сохраняет отзыв текущего пользователя. Запись не кешируется: при недоступном хранилище возвращается ошибка.
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Param id path string true "UUID ресторана"
// @Param request body models.DummyReview true "Оценка и текст отзыва"
// @Success 200 {object} map[string]any "Созданный отзыв"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении отзыва"
// @Router /restaurants/{id}/reviews [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.add"
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

	var req models.DummyReview
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
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

	id, err := h.service.AddReview(r.Context(), restaurantID, userUID, req)
	if err != nil {
		log.Error("failed to add review", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add review"))
		return
	}

	log.Info("success to add review", slog.String("review_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"review_id": id,
	}))
}
