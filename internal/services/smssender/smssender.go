// Package smssender обрабатывает задания очереди на отправку SMS-подтверждений
// по заявкам. Результат отправки фиксируется в заявке: sent при успехе,
// failed с текстом ошибки при неудаче.
package smssender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/vip-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// Transport описывает шлюз отправки SMS.
type Transport interface {
	SendSMS(ctx context.Context, phone, text string) error
}

// FormUpdater фиксирует результат отправки в заявке.
type FormUpdater interface {
	UpdateFormSMSStatus(ctx context.Context, formID, status, smsError string) (int, error)
}

// Service потребляет задания очереди и отправляет SMS-подтверждения.
type Service struct {
	transport Transport
	forms     FormUpdater
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport Transport, forms FormUpdater, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		forms:     forms,
		log:       log,
	}
}

// HandleSMSJob разбирает тело сообщения очереди, отправляет SMS и обновляет
// статус заявки. Ошибка возвращается только если статус не удалось записать:
// неудачная отправка сама по себе фиксируется в заявке как failed.
func (s *Service) HandleSMSJob(ctx context.Context, body []byte) error {
	var job models.SMSJob
	if err := json.Unmarshal(body, &job); err != nil {
		s.log.Error("failed to unmarshal sms job", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	text := confirmationText(job.Category)
	sendErr := s.transport.SendSMS(ctx, job.ContactPhone, text)

	status := models.SMSStatusSent
	smsError := ""
	if sendErr != nil {
		status = models.SMSStatusFailed
		smsError = sendErr.Error()
		s.log.Error("failed to send sms",
			slog.String("form_id", job.FormID), sl.Err(sendErr))
	}

	count, err := s.forms.UpdateFormSMSStatus(ctx, job.FormID, status, smsError)
	if err != nil {
		s.log.Error("failed to update form sms status",
			slog.String("form_id", job.FormID), sl.Err(err))
		return err
	}
	if count == 0 {
		s.log.Warn("sms job references missing form", slog.String("form_id", job.FormID))
		return nil
	}

	s.log.Info("sms job processed",
		slog.String("form_id", job.FormID),
		slog.String("status", status))
	return nil
}

func confirmationText(category string) string {
	return fmt.Sprintf("Your %s request has been received. Our team will contact you shortly.",
		categoryTitle(category))
}

func categoryTitle(category string) string {
	switch category {
	case models.CategoryHospital:
		return "hospital booking"
	case models.CategoryHomeService:
		return "home service"
	case models.CategoryEvents:
		return "event planning"
	case models.CategoryConstruction:
		return "construction service"
	case models.CategorySalon:
		return "salon appointment"
	case models.CategoryShopping:
		return "shopping"
	default:
		return "service"
	}
}
