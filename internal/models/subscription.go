package models

import "time"

// UserSubscription представляет подписку пользователя на VIP-тариф.
// На одного пользователя существует не более одной записи: повторное
// оформление заменяет запись целиком, отмена только снимает флаги
// (история дат сохраняется, запись не удаляется).
type UserSubscription struct {
	UserUID    string    `json:"user_uid"`              // Уникальный идентификатор пользователя
	PlanID     string    `json:"plan_id"`               // Ключ плана из каталога
	StartDate  time.Time `json:"start_date"`            // Дата оформления
	EndDate    time.Time `json:"end_date"`              // Дата окончания, всегда позже StartDate
	IsActive   bool      `json:"is_active"`             // Снимается при отмене; истечение срока флаг не меняет
	AutoRenew  bool      `json:"auto_renew"`            // Включается при оформлении, снимается при отмене
	PricePaid  int       `json:"price_paid"`            // Сумма, уплаченная при оформлении, в рупиях
	CouponCode *string   `json:"coupon_code,omitempty"` // Промокод, если применялся
}

// SubscriptionStatus содержит вычисленный статус подписки для ответа API.
// IsActive истинно только если запись существует, её флаг не снят отменой
// и срок действия ещё не истёк.
type SubscriptionStatus struct {
	IsActive      bool   `json:"is_active"`
	DaysRemaining int    `json:"days_remaining"`
	PlanName      string `json:"plan_name"`
}
