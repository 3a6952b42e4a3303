// Package plans содержит статический каталог VIP-тарифов.
// Каталог — конфигурация уровня процесса: собирается один раз при старте,
// проверяется на корректность и дальше не изменяется.
package plans

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// Ключи тарифов каталога.
const (
	PlanMonthly   = "monthly"
	PlanQuarterly = "quarterly"
	PlanYearly    = "yearly"
)

// Catalog хранит упорядоченный список тарифов и индекс по ключу.
type Catalog struct {
	plans []models.SubscriptionPlan
	index map[string]int
}

// New собирает каталог из списка тарифов и проверяет инварианты:
// ключи уникальны, цены положительны, пометку popular несёт не более
// одного тарифа.
func New(list []models.SubscriptionPlan) (*Catalog, error) {
	const op = "plans.New"
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: empty plan list", op)
	}
	index := make(map[string]int, len(list))
	popularSeen := false
	for i, p := range list {
		if p.ID == "" {
			return nil, fmt.Errorf("%s: plan #%d has empty id", op, i)
		}
		if _, ok := index[p.ID]; ok {
			return nil, fmt.Errorf("%s: duplicate plan id %q", op, p.ID)
		}
		if p.Price <= 0 {
			return nil, fmt.Errorf("%s: plan %q has non-positive price", op, p.ID)
		}
		if p.Popular {
			if popularSeen {
				return nil, fmt.Errorf("%s: more than one plan marked popular", op)
			}
			popularSeen = true
		}
		index[p.ID] = i
	}
	return &Catalog{plans: list, index: index}, nil
}

// MustDefault возвращает каталог тарифов приложения.
// Паника возможна только при ошибке в самих константах ниже.
func MustDefault() *Catalog {
	c, err := New(defaultPlans())
	if err != nil {
		panic(err)
	}
	return c
}

// List возвращает тарифы в порядке объявления.
func (c *Catalog) List() []models.SubscriptionPlan {
	out := make([]models.SubscriptionPlan, len(c.plans))
	copy(out, c.plans)
	return out
}

// Find возвращает тариф по ключу.
func (c *Catalog) Find(id string) (models.SubscriptionPlan, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.SubscriptionPlan{}, false
	}
	return c.plans[i], true
}

// End вычисляет дату окончания подписки, оформленной на тариф id в момент
// start. Используется календарная арифметика time.AddDate: переполнение
// конца месяца нормализуется переносом на следующий месяц
// (31 января + 1 месяц = 2/3 марта), как и в мобильном приложении.
func (c *Catalog) End(id string, start time.Time) (time.Time, bool) {
	switch id {
	case PlanMonthly:
		return start.AddDate(0, 1, 0), true
	case PlanQuarterly:
		return start.AddDate(0, 3, 0), true
	case PlanYearly:
		return start.AddDate(1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

func defaultPlans() []models.SubscriptionPlan {
	return []models.SubscriptionPlan{
		{
			ID:       PlanMonthly,
			Name:     "Monthly VIP",
			Price:    299,
			Duration: "1 Month",
			Features: []string{
				"Unlimited service requests",
				"Free booking for all services",
				"Priority customer support",
				"Exclusive deals and offers",
				"2X faster service delivery",
			},
		},
		{
			ID:       PlanQuarterly,
			Name:     "Quarterly VIP",
			Price:    799,
			Duration: "3 Months",
			Features: []string{
				"Everything in Monthly VIP",
				"15% additional savings",
				"Free home delivery",
				"Personal service manager",
				"Early access to new features",
			},
			Popular: true,
		},
		{
			ID:       PlanYearly,
			Name:     "Yearly VIP",
			Price:    2499,
			Duration: "12 Months",
			Features: []string{
				"Everything in Quarterly VIP",
				"30% additional savings",
				"Free premium services",
				"24/7 dedicated support",
				"Lifetime feature updates",
			},
		},
	}
}
