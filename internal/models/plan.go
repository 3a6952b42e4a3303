// Package models содержит доменные структуры маркетплейса скидок:
// тарифные планы, подписки пользователей, рестораны с отзывами,
// заявки по категориям и платежи. Структуры используются в бизнес-логике,
// хранилище и при формировании JSON-ответов.
package models

// SubscriptionPlan представляет тарифный план VIP-подписки из статического каталога.
// Каталог загружается один раз при старте процесса и не изменяется во время работы.
type SubscriptionPlan struct {
	ID       string   `json:"id" yaml:"id"`             // Уникальный ключ плана, например "monthly"
	Name     string   `json:"name" yaml:"name"`         // Отображаемое название
	Price    int      `json:"price" yaml:"price"`       // Цена в рупиях (целое число)
	Duration string   `json:"duration" yaml:"duration"` // Человекочитаемый срок, например "3 Months"
	Features []string `json:"features" yaml:"features"` // Упорядоченный список преимуществ
	Popular  bool     `json:"popular,omitempty" yaml:"popular"` // Пометка "самый популярный", не более одного плана
}

// DummySubscribe используется для приёма запроса на оформление подписки из JSON.
type DummySubscribe struct {
	PlanID     string `json:"plan_id" validate:"required"` // Ключ плана из каталога
	CouponCode string `json:"coupon_code,omitempty"`       // Промокод (опционально)
}
