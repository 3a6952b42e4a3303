package models

import "time"

// Категории заявок, доступные в приложении.
const (
	CategoryHospital     = "hospital"
	CategoryHomeService  = "home_service"
	CategoryEvents       = "events"
	CategoryConstruction = "construction"
	CategorySalon        = "salon"
	CategoryShopping     = "shopping"
	CategoryOthers       = "others"
)

// Статусы доставки SMS-подтверждения по заявке.
const (
	SMSStatusPending = "pending"
	SMSStatusSent    = "sent"
	SMSStatusFailed  = "failed"
)

// CategoryForm представляет заявку пользователя по одной из категорий
// маркетплейса. Поля формы хранятся произвольным JSON-объектом, так как
// набор полей зависит от категории.
type CategoryForm struct {
	ID           string         `json:"id"`            // UUID заявки
	Category     string         `json:"category"`      // Одна из констант Category*
	Payload      map[string]any `json:"payload"`       // Поля формы как есть
	ContactPhone string         `json:"contact_phone"` // Телефон для связи
	SubmittedBy  string         `json:"submitted_by"`  // UID пользователя
	SMSStatus    string         `json:"sms_status"`    // pending / sent / failed
	SMSError     string         `json:"sms_error,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// DummyForm используется для приёма заявки из JSON-запроса.
type DummyForm struct {
	Category     string         `json:"category" validate:"required,oneof=hospital home_service events construction salon shopping others"`
	Payload      map[string]any `json:"payload" validate:"required"`
	ContactPhone string         `json:"contact_phone" validate:"required"`
}

// SMSJob — сообщение очереди на отправку SMS-подтверждения по заявке.
type SMSJob struct {
	FormID       string `json:"form_id"`
	Category     string `json:"category"`
	ContactPhone string `json:"contact_phone"`
}
