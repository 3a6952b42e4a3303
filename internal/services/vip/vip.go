// Package vip содержит бизнес-логику VIP-подписки: каталог тарифов,
// оформление, отмену и вычисление статуса.
//
// Правила статуса: хранимый флаг is_active и попадание в срок действия —
// независимые условия. Отмена гасит доступ немедленно, даже если до конца
// оплаченного срока остались дни; истечение срока, напротив, флаг не меняет
// и обнаруживается только при запросе статуса.
package vip

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/vip-marketplace/internal/lib/pricing"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
	"github.com/magabrotheeeer/vip-marketplace/internal/plans"
)

// ErrUnknownPlan возвращается при попытке оформить несуществующий тариф.
var ErrUnknownPlan = errors.New("unknown plan")

// Имена планов в статусе, когда реального тарифа нет.
const (
	NoActivePlanName = "No Active Plan"
	UnknownPlanName  = "Unknown Plan"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// UpsertSubscription заменяет подписку пользователя целиком.
	UpsertSubscription(ctx context.Context, sub models.UserSubscription) error
	// GetSubscription возвращает подписку пользователя или nil, если её нет.
	GetSubscription(ctx context.Context, userUID string) (*models.UserSubscription, error)
	// CancelSubscription снимает флаги активности, возвращает число затронутых строк.
	CancelSubscription(ctx context.Context, userUID string) (int, error)
}

// Service реализует операции над VIP-подпиской пользователя.
type Service struct {
	repo     SubscriptionRepository
	catalog  *plans.Catalog
	discount float64
	log      *slog.Logger
	now      func() time.Time

	// Мутаторы одного пользователя сериализуются, иначе два одновременных
	// Subscribe теряют одну из записей (last write wins без контроля версий).
	userLocks sync.Map // map[string]*sync.Mutex
}

// New создает новый экземпляр Service. При discount <= 0 используется
// скидка по умолчанию.
func New(repo SubscriptionRepository, catalog *plans.Catalog, discount float64, log *slog.Logger) *Service {
	if discount <= 0 {
		discount = pricing.DefaultVIPDiscount
	}
	return &Service{
		repo:     repo,
		catalog:  catalog,
		discount: discount,
		log:      log,
		now:      time.Now,
	}
}

// ListPlans возвращает каталог тарифов в порядке объявления.
func (s *Service) ListPlans() []models.SubscriptionPlan {
	return s.catalog.List()
}

// Quote возвращает раскладку цены basePrice при действующей VIP-скидке.
func (s *Service) Quote(basePrice int) pricing.Split {
	return pricing.VIPPrice(basePrice, s.discount)
}

// Subscribe оформляет подписку пользователя на тариф, заменяя существующую
// запись: даты сбрасываются, остаток прежнего срока не переносится.
func (s *Service) Subscribe(ctx context.Context, userUID string, req models.DummySubscribe) (*models.UserSubscription, error) {
	plan, ok := s.catalog.Find(req.PlanID)
	if !ok {
		return nil, ErrUnknownPlan
	}

	unlock := s.lockUser(userUID)
	defer unlock()

	start := s.now()
	end, ok := s.catalog.End(plan.ID, start)
	if !ok {
		return nil, ErrUnknownPlan
	}

	sub := models.UserSubscription{
		UserUID:   userUID,
		PlanID:    plan.ID,
		StartDate: start,
		EndDate:   end,
		IsActive:  true,
		AutoRenew: true,
		PricePaid: plan.Price,
	}
	if req.CouponCode != "" {
		coupon := req.CouponCode
		sub.CouponCode = &coupon
	}

	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return nil, err
	}

	s.log.Info("subscription created",
		slog.String("user_uid", userUID),
		slog.String("plan_id", plan.ID),
		slog.Time("end_date", end))
	return &sub, nil
}

// Cancel снимает флаги активности подписки, сохраняя историю дат.
// Отсутствие подписки не ошибка: повторный вызов дает тот же результат.
func (s *Service) Cancel(ctx context.Context, userUID string) error {
	unlock := s.lockUser(userUID)
	defer unlock()

	count, err := s.repo.CancelSubscription(ctx, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		s.log.Info("cancel without subscription, nothing to do", slog.String("user_uid", userUID))
		return nil
	}
	s.log.Info("subscription cancelled", slog.String("user_uid", userUID))
	return nil
}

// Status вычисляет текущий статус подписки пользователя.
func (s *Service) Status(ctx context.Context, userUID string) (models.SubscriptionStatus, error) {
	sub, err := s.repo.GetSubscription(ctx, userUID)
	if err != nil {
		return models.SubscriptionStatus{}, err
	}
	return s.computeStatus(sub), nil
}

func (s *Service) computeStatus(sub *models.UserSubscription) models.SubscriptionStatus {
	if sub == nil || !sub.IsActive {
		return models.SubscriptionStatus{IsActive: false, DaysRemaining: 0, PlanName: NoActivePlanName}
	}

	days := daysRemaining(sub.EndDate, s.now())
	planName := UnknownPlanName
	if plan, ok := s.catalog.Find(sub.PlanID); ok {
		planName = plan.Name
	}
	return models.SubscriptionStatus{
		IsActive:      days > 0,
		DaysRemaining: days,
		PlanName:      planName,
	}
}

// daysRemaining считает оставшиеся дни как потолок разницы в сутках,
// не меньше нуля.
func daysRemaining(end, now time.Time) int {
	diff := end.Sub(now)
	if diff <= 0 {
		return 0
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}

func (s *Service) lockUser(userUID string) func() {
	v, _ := s.userLocks.LoadOrStore(userUID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
