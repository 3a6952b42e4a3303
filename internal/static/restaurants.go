// Package static содержит демонстрационный набор данных каталога.
// Используется слоем данных как запасной ответ, когда хранилище недоступно:
// списочные экраны приложения никогда не должны падать с ошибкой чтения.
package static

import (
	"time"

	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// Restaurants возвращает запасной список ресторанов.
// Содержимое повторяет демо-каталог мобильного приложения.
func Restaurants() []models.Restaurant {
	now := time.Now().UTC()
	return []models.Restaurant{
		{
			ID:          "7b8a1c1e-0000-4000-8000-000000000001",
			Name:        "ICE HOUSE",
			Category:    "Food",
			Specialist:  []string{"Pizza", "Burger", "Ice Creams", "French Fries", "Mocktails", "Thickshakes"},
			Phone:       "+91 98765 43210",
			Area:        "Gandi Maisamma",
			PriceForTwo: "₹300 for two",
			OpenTime:    "10:00 AM - 11:00 PM",
			Rating:      4.5,
			Reviews:     250,
			Discounts: models.Discounts{
				NormalUsers: "5% Discount",
				VIPUsers:    "10% Discount",
			},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "7b8a1c1e-0000-4000-8000-000000000002",
			Name:        "Shankar Chat",
			Category:    "Food",
			Specialist:  []string{"Pani Puri", "Chaat"},
			Phone:       "+91 98765 43211",
			Area:        "Kompally",
			PriceForTwo: "₹700 for two",
			OpenTime:    "11:00 AM - 10:00 PM",
			Rating:      4.8,
			Reviews:     180,
			Discounts: models.Discounts{
				NormalUsers: "10% Discount",
				VIPUsers:    "15% Discount",
			},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "7b8a1c1e-0000-4000-8000-000000000003",
			Name:        "Indian Fast Food",
			Category:    "Food",
			Specialist:  []string{"Rice", "Noodles", "Manchurian"},
			Phone:       "+91 98765 43212",
			Area:        "Pet Basheerabad",
			PriceForTwo: "₹500 for two",
			OpenTime:    "12:00 PM - 11:00 PM",
			Rating:      4.6,
			Reviews:     320,
			Discounts: models.Discounts{
				NormalUsers: "5% Discount",
				VIPUsers:    "10% Discount",
			},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// FindRestaurant ищет ресторан в запасном наборе по идентификатору.
func FindRestaurant(id string) (*models.Restaurant, bool) {
	for _, r := range Restaurants() {
		if r.ID == id {
			return &r, true
		}
	}
	return nil, false
}
