// Package datalayer реализует кешированный доступ к данным каталога.
//
// Чтения идут через кеш с ограниченным временем жизни и деградируют до
// статического набора данных, если источник недоступен: списочные экраны
// приложения показывают хоть что-то вместо ошибки. Записи, наоборот,
// никогда не подменяются: ошибка записи возвращается вызывающему, а
// успешная запись инвалидирует затронутые ключи кеша.
package datalayer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/magabrotheeeer/vip-marketplace/internal/cache"
	"github.com/magabrotheeeer/vip-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
	"github.com/magabrotheeeer/vip-marketplace/internal/static"
)

// DefaultTTL — время жизни записи кеша по умолчанию.
const DefaultTTL = 5 * time.Minute

// DefaultFetchTimeout — таймаут похода в источник по умолчанию.
// Истечение таймаута считается ошибкой источника и включает fallback.
const DefaultFetchTimeout = 3 * time.Second

// Repository определяет методы источника данных (хранилища).
type Repository interface {
	ListRestaurants(ctx context.Context, limit, offset int) ([]*models.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
	ListReviews(ctx context.Context, restaurantID string) ([]*models.RestaurantReview, error)
	CreateReview(ctx context.Context, review models.RestaurantReview) (string, error)
	CreateForm(ctx context.Context, form models.CategoryForm) (string, error)
	ListFormsByUser(ctx context.Context, userUID string) ([]*models.CategoryForm, error)
	CreatePayment(ctx context.Context, p models.Payment) (string, error)
	ListPaymentsByUser(ctx context.Context, userUID string) ([]*models.Payment, error)
}

// Notifier публикует задание на SMS-подтверждение заявки.
type Notifier interface {
	PublishSMSJob(job models.SMSJob) error
}

// Service реализует кешированный доступ к данным каталога.
type Service struct {
	repo         Repository
	cache        cache.Cache
	notifier     Notifier
	log          *slog.Logger
	ttl          time.Duration
	fetchTimeout time.Duration

	// Одновременные промахи по одному ключу сворачиваются в один поход
	// в источник.
	group singleflight.Group
}

// New создает новый экземпляр Service. Нулевые ttl и fetchTimeout
// заменяются значениями по умолчанию.
func New(repo Repository, c cache.Cache, notifier Notifier, log *slog.Logger, ttl, fetchTimeout time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &Service{
		repo:         repo,
		cache:        c,
		notifier:     notifier,
		log:          log,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
	}
}

// ===== ЧТЕНИЯ (fail-open) =====

// Restaurants возвращает страницу каталога ресторанов.
// При недоступном источнике возвращается статический демо-набор.
func (s *Service) Restaurants(ctx context.Context, limit, offset int) []*models.Restaurant {
	key := fmt.Sprintf("restaurants:%d:%d", limit, offset)
	result, err := fetchCached(s, ctx, key, func(ctx context.Context) ([]*models.Restaurant, error) {
		return s.repo.ListRestaurants(ctx, limit, offset)
	})
	if err != nil {
		s.fallback("restaurants", key, err)
		return staticRestaurantList()
	}
	return result
}

// Restaurant возвращает карточку ресторана или nil, если её нет ни в
// источнике, ни в статическом наборе.
func (s *Service) Restaurant(ctx context.Context, id string) *models.Restaurant {
	key := "restaurant:" + id
	result, err := fetchCached(s, ctx, key, func(ctx context.Context) (*models.Restaurant, error) {
		return s.repo.GetRestaurant(ctx, id)
	})
	if err != nil {
		s.fallback("restaurant", key, err)
		r, ok := static.FindRestaurant(id)
		if !ok {
			return nil
		}
		return r
	}
	return result
}

// Reviews возвращает отзывы ресторана. Запасной набор отзывов пуст.
func (s *Service) Reviews(ctx context.Context, restaurantID string) []*models.RestaurantReview {
	key := "reviews:" + restaurantID
	result, err := fetchCached(s, ctx, key, func(ctx context.Context) ([]*models.RestaurantReview, error) {
		return s.repo.ListReviews(ctx, restaurantID)
	})
	if err != nil {
		s.fallback("reviews", key, err)
		return []*models.RestaurantReview{}
	}
	return result
}

// Forms возвращает заявки пользователя. Запасной набор пуст.
func (s *Service) Forms(ctx context.Context, userUID string) []*models.CategoryForm {
	key := "forms:" + userUID
	result, err := fetchCached(s, ctx, key, func(ctx context.Context) ([]*models.CategoryForm, error) {
		return s.repo.ListFormsByUser(ctx, userUID)
	})
	if err != nil {
		s.fallback("forms", key, err)
		return []*models.CategoryForm{}
	}
	return result
}

// Payments возвращает платежи пользователя. Запасной набор пуст.
func (s *Service) Payments(ctx context.Context, userUID string) []*models.Payment {
	key := "payments:" + userUID
	result, err := fetchCached(s, ctx, key, func(ctx context.Context) ([]*models.Payment, error) {
		return s.repo.ListPaymentsByUser(ctx, userUID)
	})
	if err != nil {
		s.fallback("payments", key, err)
		return []*models.Payment{}
	}
	return result
}

// ===== ЗАПИСИ (fail-closed) =====

// AddReview сохраняет отзыв и инвалидирует список отзывов ресторана.
// Ошибка записи возвращается вызывающему как есть.
func (s *Service) AddReview(ctx context.Context, restaurantID, userUID string, req models.DummyReview) (string, error) {
	review := models.RestaurantReview{
		RestaurantID: restaurantID,
		UserUID:      userUID,
		Rating:       req.Rating,
		Text:         req.Text,
	}
	id, err := s.repo.CreateReview(ctx, review)
	if err != nil {
		return "", err
	}
	s.Invalidate("reviews:" + restaurantID)
	s.log.Info("review created",
		slog.String("review_id", id),
		slog.String("restaurant_id", restaurantID))
	return id, nil
}

// SubmitForm сохраняет заявку и ставит задание на SMS-подтверждение.
// Недоступность очереди уведомлений не отменяет запись: заявка остается
// со статусом pending.
func (s *Service) SubmitForm(ctx context.Context, userUID string, req models.DummyForm) (string, error) {
	form := models.CategoryForm{
		Category:     req.Category,
		Payload:      req.Payload,
		ContactPhone: req.ContactPhone,
		SubmittedBy:  userUID,
	}
	id, err := s.repo.CreateForm(ctx, form)
	if err != nil {
		return "", err
	}
	s.Invalidate("forms:" + userUID)

	job := models.SMSJob{
		FormID:       id,
		Category:     req.Category,
		ContactPhone: req.ContactPhone,
	}
	if err := s.notifier.PublishSMSJob(job); err != nil {
		s.log.Error("failed to publish sms job", slog.String("form_id", id), sl.Err(err))
	}

	s.log.Info("category form submitted",
		slog.String("form_id", id),
		slog.String("category", req.Category))
	return id, nil
}

// CreatePayment сохраняет платёж со статусом created и инвалидирует
// список платежей пользователя.
func (s *Service) CreatePayment(ctx context.Context, userUID string, req models.DummyPayment) (string, error) {
	payment := models.Payment{
		UserUID:  userUID,
		Purpose:  req.Purpose,
		Amount:   req.Amount,
		Currency: "INR",
		Status:   models.PaymentStatusCreated,
		Provider: req.Provider,
	}
	id, err := s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return "", err
	}
	s.Invalidate("payments:" + userUID)
	s.log.Info("payment created", slog.String("payment_id", id))
	return id, nil
}

// Reset полностью очищает кеш. Вызывается при выходе пользователя.
func (s *Service) Reset() {
	if err := s.cache.InvalidateAll(); err != nil {
		s.log.Warn("failed to reset cache", sl.Err(err))
	}
}

// Invalidate удаляет одну запись кеша; следующее чтение этого ключа
// пойдет в источник даже внутри окна TTL.
func (s *Service) Invalidate(key string) {
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", key), sl.Err(err))
	}
}

// ===== ВНУТРЕННЕЕ =====

func (s *Service) fallback(entity, key string, err error) {
	fallbacks.WithLabelValues(entity).Inc()
	s.log.Warn("fetch failed, serving fallback",
		slog.String("key", key), sl.Err(err))
}

// fetchCached возвращает живое значение из кеша либо идет в источник,
// сохраняя успешный ответ с временем жизни ttl. Поход в источник ограничен
// таймаутом и выполняется не более одного раза на ключ одновременно.
func fetchCached[T any](s *Service, ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", key), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()

		result, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(key, result, s.ttl); err != nil {
			s.log.Warn("failed to cache value", slog.String("key", key), sl.Err(err))
		}
		return result, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func staticRestaurantList() []*models.Restaurant {
	list := static.Restaurants()
	out := make([]*models.Restaurant, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out
}
