// Package submit реализует HTTP-обработчик отправки заявки по категории.
//
// Handler принимает JSON-запрос с категорией, полями формы и контактным
// телефоном, валидирует их, сохраняет заявку через слой данных и ставит
// задание на SMS-подтверждение.
package submit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/vip-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vip-marketplace/internal/http/response"
	"github.com/magabrotheeeer/vip-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// Service описывает интерфейс слоя данных для записи заявки.
type Service interface {
	SubmitForm(ctx context.Context, userUID string, req models.DummyForm) (string, error)
}

// Handler управляет HTTP-запросами на отправку заявки.
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
// @Summary Отправить заявку по категории
// @Description Сохраняет заявку текущего пользователя и ставит задание на SMS-подтверждение. Возвращает ID заявки.
// @Tags Forms
// @Accept  json
// @Produce  json
// @Param request body models.DummyForm true "Категория, поля формы и телефон"
// @Success 200 {object} map[string]any "Созданная заявка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении заявки"
// @Router /forms [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.form.submit"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("category", req.Category))

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

	id, err := h.service.SubmitForm(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to submit form", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not submit form"))
		return
	}

	log.Info("success to submit form", slog.String("form_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"form_id":    id,
		"sms_status": models.SMSStatusPending,
	}))
}
