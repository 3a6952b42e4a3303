package models

import "time"

// Статусы платежа.
const (
	PaymentStatusCreated = "created"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Поддерживаемые платёжные провайдеры.
const (
	ProviderPaytm   = "paytm"
	ProviderPhonePe = "phonepe"
)

// Payment представляет платёж пользователя. Сумма хранится в пайсах,
// чтобы избежать дробной арифметики.
type Payment struct {
	ID          string    `json:"id"`           // UUID платежа
	UserUID     string    `json:"user_uid"`     // Плательщик
	Purpose     string    `json:"purpose"`      // Назначение, например "vip_subscription"
	Amount      int64     `json:"amount"`       // Сумма в пайсах
	Currency    string    `json:"currency"`     // Код валюты, по умолчанию INR
	Status      string    `json:"status"`       // created / success / failed
	Provider    string    `json:"provider"`     // paytm / phonepe
	ProviderRef string    `json:"provider_ref,omitempty"` // Идентификатор на стороне провайдера
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DummyPayment используется для приёма запроса на создание платежа из JSON.
type DummyPayment struct {
	Purpose  string `json:"purpose" validate:"required"`
	Amount   int64  `json:"amount" validate:"required,gt=0"` // Сумма в пайсах (>0)
	Provider string `json:"provider" validate:"required,oneof=paytm phonepe"`
}
