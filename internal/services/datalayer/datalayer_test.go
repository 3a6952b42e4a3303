package datalayer

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vip-marketplace/internal/cache"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListRestaurants(ctx context.Context, limit, offset int) ([]*models.Restaurant, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Restaurant), args.Error(1)
}

func (m *RepoMock) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Restaurant), args.Error(1)
}

func (m *RepoMock) ListReviews(ctx context.Context, restaurantID string) ([]*models.RestaurantReview, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RestaurantReview), args.Error(1)
}

func (m *RepoMock) CreateReview(ctx context.Context, review models.RestaurantReview) (string, error) {
	args := m.Called(ctx, review)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) CreateForm(ctx context.Context, form models.CategoryForm) (string, error) {
	args := m.Called(ctx, form)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) ListFormsByUser(ctx context.Context, userUID string) ([]*models.CategoryForm, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CategoryForm), args.Error(1)
}

func (m *RepoMock) CreatePayment(ctx context.Context, p models.Payment) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) ListPaymentsByUser(ctx context.Context, userUID string) ([]*models.Payment, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) PublishSMSJob(job models.SMSJob) error {
	return m.Called(job).Error(0)
}

// brokenCache имитирует недоступный кеш: любая операция возвращает ошибку.
type brokenCache struct{}

func (brokenCache) Get(string, any) (bool, error)          { return false, errors.New("cache down") }
func (brokenCache) Set(string, any, time.Duration) error   { return errors.New("cache down") }
func (brokenCache) Invalidate(string) error                { return errors.New("cache down") }
func (brokenCache) InvalidateAll() error                   { return errors.New("cache down") }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestService(repo *RepoMock, notifier *NotifierMock, c cache.Cache, ttl time.Duration) *Service {
	return New(repo, c, notifier, testLogger(), ttl, time.Second)
}

func sampleRestaurants() []*models.Restaurant {
	return []*models.Restaurant{
		{ID: "r-1", Name: "Cafe One", Rating: 4.2},
		{ID: "r-2", Name: "Cafe Two", Rating: 4.7},
	}
}

func TestRestaurants_CachesBetweenCalls(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListRestaurants", mock.Anything, 20, 0).Return(sampleRestaurants(), nil).Once()
	svc := newTestService(repo, new(NotifierMock), cache.NewMemory(), time.Minute)

	first := svc.Restaurants(context.Background(), 20, 0)
	second := svc.Restaurants(context.Background(), 20, 0)

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "ListRestaurants", 1)
}

func TestRestaurants_PagesAreCachedSeparately(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListRestaurants", mock.Anything, 20, 0).Return(sampleRestaurants(), nil).Once()
	repo.On("ListRestaurants", mock.Anything, 20, 20).Return([]*models.Restaurant{}, nil).Once()
	svc := newTestService(repo, new(NotifierMock), cache.NewMemory(), time.Minute)

	assert.Len(t, svc.Restaurants(context.Background(), 20, 0), 2)
	assert.Empty(t, svc.Restaurants(context.Background(), 20, 20))
	repo.AssertExpectations(t)
}

func TestRestaurants_RefetchAfterTTL(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListRestaurants", mock.Anything, 20, 0).Return(sampleRestaurants(), nil).Twice()
	svc := newTestService(repo, new(NotifierMock), cache.NewMemory(), 10*time.Millisecond)

	svc.Restaurants(context.Background(), 20, 0)
	time.Sleep(25 * time.Millisecond)
	svc.Restaurants(context.Background(), 20, 0)

	repo.AssertExpectations(t)
}

func TestInvalidate_ForcesRefetchInsideTTL(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListRestaurants", mock.Anything, 20, 0).Return(sampleRestaurants(), nil).Twice()
	svc := newTestService(repo, new(NotifierMock), cache.NewMemory(), time.Minute)

	svc.Restaurants(context.Background(), 20, 0)
	svc.Invalidate("restaurants:20:0")
	svc.Restaurants(context.Background(), 20, 0)

	repo.AssertExpectations(t)
}

func TestRestaurants_FallbackOnRepoError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListRestaurants", mock.Anything, 20, 0).Return(nil, errors.New("storage down"))
	svc := newTestService(repo, new(NotifierMock), cache.NewMemory(), time.Minute)

	got := svc.Restaurants(context.Background(), 20, 0)

	require.Len(t, got, 3)
	assert.Equal(t, "ICE HOUSE", got[0].Name)
}

func TestRestaurants_FallbackOnBrokenCache(t *testing.T) {
	// Недоступный кеш не ломает чтение: оба вызова идут в источник.
	repo := new(RepoMock)
	repo.On("ListRestaurants", mock.Anything, 20, 0).Return(sampleRestaurants(), nil).Twice()
	svc := newTestService(repo, new(NotifierMock), brokenCache{}, time.Minute)

	assert.Len(t, svc.Restaurants(context.Background(), 20, 0), 2)
	assert.Len(t, svc.Restaurants(context.Background(), 20, 0), 2)
	repo.AssertExpectations(t)
}

func TestRestaurant_FallbackLookup(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		wantName string
		wantNil  bool
	}{
		{"ресторан есть в запасном наборе", "7b8a1c1e-0000-4000-8000-000000000001", "ICE HOUSE", false},
		{"ресторана нет нигде", "no-such-id", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("GetRestaurant", mock.Anything, tt.id).Return(nil, errors.New("storage down"))
			svc := newTestService(repo, new(NotifierMock), cache.NewMemory(), time.Minute)

			got := svc.Restaurant(context.Background(), tt.id)
			if tt.wantNil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, tt.wantName, got.Name)
			}
		})
	}
}

func TestReviews_EmptyFallback(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListReviews", mock.Anything, "r-1").Return(nil, errors.New("storage down"))
	svc := newTestService(repo, new(NotifierMock), cache.NewMemory(), time.Minute)

	got := svc.Reviews(context.Background(), "r-1")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSingleflight_DeduplicatesConcurrentMisses(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListRestaurants", mock.Anything, 20, 0).
		Run(func(mock.Arguments) { time.Sleep(50 * time.Millisecond) }).
		Return(sampleRestaurants(), nil).Once()
	svc := newTestService(repo, new(NotifierMock), cache.NewMemory(), time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, svc.Restaurants(context.Background(), 20, 0), 2)
		}()
	}
	wg.Wait()

	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "ListRestaurants", 1)
}

func TestAddReview_InvalidatesReviewList(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListReviews", mock.Anything, "r-1").Return([]*models.RestaurantReview{}, nil).Twice()
	repo.On("CreateReview", mock.Anything, mock.AnythingOfType("models.RestaurantReview")).Return("rev-1", nil)
	svc := newTestService(repo, new(NotifierMock), cache.NewMemory(), time.Minute)

	svc.Reviews(context.Background(), "r-1")
	id, err := svc.AddReview(context.Background(), "r-1", "uid-1", models.DummyReview{Rating: 5, Text: "great"})
	require.NoError(t, err)
	assert.Equal(t, "rev-1", id)

	// После записи список отзывов читается из источника заново.
	svc.Reviews(context.Background(), "r-1")
	repo.AssertExpectations(t)
}

func TestAddReview_RepoError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateReview", mock.Anything, mock.AnythingOfType("models.RestaurantReview")).
		Return("", errors.New("storage down"))
	svc := newTestService(repo, new(NotifierMock), cache.NewMemory(), time.Minute)

	_, err := svc.AddReview(context.Background(), "r-1", "uid-1", models.DummyReview{Rating: 4})
	require.Error(t, err)
}

func TestSubmitForm_PublishesSMSJob(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateForm", mock.Anything, mock.AnythingOfType("models.CategoryForm")).Return("form-1", nil)
	notifier := new(NotifierMock)
	var published models.SMSJob
	notifier.On("PublishSMSJob", mock.AnythingOfType("models.SMSJob")).
		Run(func(args mock.Arguments) { published = args.Get(0).(models.SMSJob) }).
		Return(nil)
	svc := newTestService(repo, notifier, cache.NewMemory(), time.Minute)

	req := models.DummyForm{
		Category:     models.CategoryHospital,
		Payload:      map[string]any{"patient_name": "Ravi"},
		ContactPhone: "+91 90000 00001",
	}
	id, err := svc.SubmitForm(context.Background(), "uid-1", req)
	require.NoError(t, err)
	assert.Equal(t, "form-1", id)

	assert.Equal(t, "form-1", published.FormID)
	assert.Equal(t, models.CategoryHospital, published.Category)
	assert.Equal(t, "+91 90000 00001", published.ContactPhone)
	notifier.AssertExpectations(t)
}

func TestSubmitForm_QueueDownStillSucceeds(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateForm", mock.Anything, mock.AnythingOfType("models.CategoryForm")).Return("form-1", nil)
	notifier := new(NotifierMock)
	notifier.On("PublishSMSJob", mock.AnythingOfType("models.SMSJob")).Return(errors.New("broker down"))
	svc := newTestService(repo, notifier, cache.NewMemory(), time.Minute)

	id, err := svc.SubmitForm(context.Background(), "uid-1", models.DummyForm{
		Category:     models.CategoryEvents,
		Payload:      map[string]any{"event": "wedding"},
		ContactPhone: "+91 90000 00002",
	})
	require.NoError(t, err)
	assert.Equal(t, "form-1", id)
}

func TestSubmitForm_RepoError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateForm", mock.Anything, mock.AnythingOfType("models.CategoryForm")).
		Return("", errors.New("storage down"))
	notifier := new(NotifierMock)
	svc := newTestService(repo, notifier, cache.NewMemory(), time.Minute)

	_, err := svc.SubmitForm(context.Background(), "uid-1", models.DummyForm{
		Category:     models.CategorySalon,
		Payload:      map[string]any{},
		ContactPhone: "+91 90000 00003",
	})
	require.Error(t, err)
	notifier.AssertNotCalled(t, "PublishSMSJob", mock.Anything)
}

func TestCreatePayment_FillsDefaults(t *testing.T) {
	repo := new(RepoMock)
	var created models.Payment
	repo.On("CreatePayment", mock.Anything, mock.AnythingOfType("models.Payment")).
		Run(func(args mock.Arguments) { created = args.Get(1).(models.Payment) }).
		Return("pay-1", nil)
	svc := newTestService(repo, new(NotifierMock), cache.NewMemory(), time.Minute)

	id, err := svc.CreatePayment(context.Background(), "uid-1", models.DummyPayment{
		Purpose:  "vip_subscription",
		Amount:   79900,
		Provider: models.ProviderPaytm,
	})
	require.NoError(t, err)
	assert.Equal(t, "pay-1", id)

	assert.Equal(t, "uid-1", created.UserUID)
	assert.Equal(t, int64(79900), created.Amount)
	assert.Equal(t, "INR", created.Currency)
	assert.Equal(t, models.PaymentStatusCreated, created.Status)
	assert.Equal(t, models.ProviderPaytm, created.Provider)
}

func TestReset_DropsAllCachedKeys(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListRestaurants", mock.Anything, 20, 0).Return(sampleRestaurants(), nil).Twice()
	repo.On("ListReviews", mock.Anything, "r-1").Return([]*models.RestaurantReview{}, nil).Twice()
	svc := newTestService(repo, new(NotifierMock), cache.NewMemory(), time.Minute)

	svc.Restaurants(context.Background(), 20, 0)
	svc.Reviews(context.Background(), "r-1")
	svc.Reset()
	svc.Restaurants(context.Background(), 20, 0)
	svc.Reviews(context.Background(), "r-1")

	repo.AssertExpectations(t)
}
