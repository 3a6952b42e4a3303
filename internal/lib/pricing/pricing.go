// Package pricing вычисляет цены со скидкой для VIP-пользователей.
package pricing

import "math"

// Split содержит раскладку цены: обычная, VIP и размер экономии.
// Все значения в рупиях.
type Split struct {
	Normal  int `json:"normal"`
	VIP     int `json:"vip"`
	Savings int `json:"savings"`
}

// DefaultVIPDiscount — доля скидки VIP-пользователя по умолчанию.
const DefaultVIPDiscount = 0.5

// VIPPrice возвращает раскладку цены basePrice при скидке discount (0..1).
// VIP-цена округляется до ближайшей рупии, экономия — разница с базовой ценой.
func VIPPrice(basePrice int, discount float64) Split {
	if discount < 0 {
		discount = 0
	}
	if discount > 1 {
		discount = 1
	}
	vip := int(math.Round(float64(basePrice) * (1 - discount)))
	return Split{
		Normal:  basePrice,
		VIP:     vip,
		Savings: basePrice - vip,
	}
}
