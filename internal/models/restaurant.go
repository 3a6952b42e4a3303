package models

import "time"

// Discounts описывает скидки ресторана для обычных и VIP-пользователей.
// Значения хранятся строками так, как их отдает каталог ("Flat 10% OFF").
type Discounts struct {
	NormalUsers string `json:"normal_users"`
	VIPUsers    string `json:"vip_users"`
}

// Restaurant представляет карточку ресторана в каталоге.
type Restaurant struct {
	ID          string    `json:"id"`                    // UUID записи
	Name        string    `json:"name"`                  // Название
	Category    string    `json:"category"`              // Категория каталога, например "Food"
	Description string    `json:"description,omitempty"` // Краткое описание
	Specialist  []string  `json:"specialist,omitempty"`  // Фирменные блюда
	Phone       string    `json:"phone,omitempty"`       // Контактный телефон
	Area        string    `json:"area,omitempty"`        // Район города
	Address     string    `json:"address,omitempty"`     // Адрес одной строкой
	PriceForTwo string    `json:"price_for_two,omitempty"`
	OpenTime    string    `json:"open_time,omitempty"`
	Rating      float64   `json:"rating"`       // Средняя оценка 1-5
	Reviews     int       `json:"reviews"`      // Количество отзывов
	Discounts   Discounts `json:"discounts"`    // Скидки по режимам пользователя
	Photos      []string  `json:"photos,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RestaurantReview представляет отзыв пользователя о ресторане.
type RestaurantReview struct {
	ID           string    `json:"id"`            // UUID отзыва
	RestaurantID string    `json:"restaurant_id"` // UUID ресторана
	UserUID      string    `json:"user_uid"`      // Автор отзыва
	Rating       int       `json:"rating"`        // Оценка 1-5
	Text         string    `json:"text,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DummyReview используется для приёма нового отзыва из JSON-запроса.
type DummyReview struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"` // Оценка 1-5
	Text   string `json:"text,omitempty"`                         // Текст отзыва (опционально)
}
