package vip

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vip-marketplace/internal/models"
	"github.com/magabrotheeeer/vip-marketplace/internal/plans"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) UpsertSubscription(ctx context.Context, sub models.UserSubscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *RepoMock) GetSubscription(ctx context.Context, userUID string) (*models.UserSubscription, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSubscription), args.Error(1)
}

func (m *RepoMock) CancelSubscription(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func newTestService(repo *RepoMock, now time.Time) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := New(repo, plans.MustDefault(), 0.5, logger)
	svc.now = func() time.Time { return now }
	return svc
}

func TestListPlans(t *testing.T) {
	svc := newTestService(new(RepoMock), time.Now())
	list := svc.ListPlans()
	require.Len(t, list, 3)
	assert.Equal(t, "Monthly VIP", list[0].Name)
}

func TestQuote(t *testing.T) {
	svc := newTestService(new(RepoMock), time.Now())
	split := svc.Quote(500)
	assert.Equal(t, 500, split.Normal)
	assert.Equal(t, 250, split.VIP)
	assert.Equal(t, 250, split.Savings)
}

func TestQuote_DefaultDiscount(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := New(new(RepoMock), plans.MustDefault(), 0, logger)
	split := svc.Quote(299)
	assert.Equal(t, 150, split.VIP)
}

func TestSubscribe(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		planID  string
		wantEnd time.Time
	}{
		{"месячный тариф", plans.PlanMonthly, time.Date(2024, time.February, 15, 10, 0, 0, 0, time.UTC)},
		{"квартальный тариф", plans.PlanQuarterly, time.Date(2024, time.April, 15, 10, 0, 0, 0, time.UTC)},
		{"годовой тариф", plans.PlanYearly, time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("UpsertSubscription", mock.Anything, mock.AnythingOfType("models.UserSubscription")).Return(nil)
			svc := newTestService(repo, now)

			sub, err := svc.Subscribe(context.Background(), "uid-1", models.DummySubscribe{PlanID: tt.planID})
			require.NoError(t, err)

			assert.Equal(t, "uid-1", sub.UserUID)
			assert.Equal(t, tt.planID, sub.PlanID)
			assert.Equal(t, now, sub.StartDate)
			assert.Equal(t, tt.wantEnd, sub.EndDate)
			assert.True(t, sub.IsActive)
			assert.True(t, sub.AutoRenew)
			assert.True(t, sub.EndDate.After(sub.StartDate))
			repo.AssertExpectations(t)
		})
	}
}

func TestSubscribe_UnknownPlan(t *testing.T) {
	repo := new(RepoMock)
	svc := newTestService(repo, time.Now())

	sub, err := svc.Subscribe(context.Background(), "uid-1", models.DummySubscribe{PlanID: "weekly"})
	assert.ErrorIs(t, err, ErrUnknownPlan)
	assert.Nil(t, sub)
	repo.AssertNotCalled(t, "UpsertSubscription", mock.Anything, mock.Anything)
}

func TestSubscribe_CouponAndPrice(t *testing.T) {
	repo := new(RepoMock)
	var saved models.UserSubscription
	repo.On("UpsertSubscription", mock.Anything, mock.AnythingOfType("models.UserSubscription")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(models.UserSubscription)
		}).Return(nil)
	svc := newTestService(repo, time.Now())

	_, err := svc.Subscribe(context.Background(), "uid-1",
		models.DummySubscribe{PlanID: plans.PlanQuarterly, CouponCode: "WELCOME"})
	require.NoError(t, err)

	assert.Equal(t, 799, saved.PricePaid)
	require.NotNil(t, saved.CouponCode)
	assert.Equal(t, "WELCOME", *saved.CouponCode)
}

func TestSubscribe_RepoError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("UpsertSubscription", mock.Anything, mock.Anything).Return(errors.New("db error"))
	svc := newTestService(repo, time.Now())

	_, err := svc.Subscribe(context.Background(), "uid-1", models.DummySubscribe{PlanID: plans.PlanMonthly})
	assert.Error(t, err)
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name      string
		cancelled int
		repoErr   error
		wantErr   bool
	}{
		{"отмена существующей подписки", 1, nil, false},
		{"отмена без подписки — no-op", 0, nil, false},
		{"ошибка хранилища", 0, errors.New("db error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("CancelSubscription", mock.Anything, "uid-1").Return(tt.cancelled, tt.repoErr)
			svc := newTestService(repo, time.Now())

			err := svc.Cancel(context.Background(), "uid-1")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCancel_Idempotent(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CancelSubscription", mock.Anything, "uid-1").Return(1, nil).Once()
	repo.On("CancelSubscription", mock.Anything, "uid-1").Return(0, nil).Once()
	svc := newTestService(repo, time.Now())

	assert.NoError(t, svc.Cancel(context.Background(), "uid-1"))
	assert.NoError(t, svc.Cancel(context.Background(), "uid-1"))
	repo.AssertExpectations(t)
}

func TestStatus(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		sub  *models.UserSubscription
		want models.SubscriptionStatus
	}{
		{
			name: "подписки нет",
			sub:  nil,
			want: models.SubscriptionStatus{IsActive: false, DaysRemaining: 0, PlanName: NoActivePlanName},
		},
		{
			name: "активная месячная подписка в день оформления",
			sub: &models.UserSubscription{
				UserUID:   "uid-1",
				PlanID:    plans.PlanMonthly,
				StartDate: now,
				EndDate:   now.AddDate(0, 1, 0),
				IsActive:  true,
				AutoRenew: true,
			},
			want: models.SubscriptionStatus{IsActive: true, DaysRemaining: 31, PlanName: "Monthly VIP"},
		},
		{
			name: "отменённая подписка с оставшимися днями гаснет сразу",
			sub: &models.UserSubscription{
				UserUID:   "uid-1",
				PlanID:    plans.PlanMonthly,
				StartDate: now.AddDate(0, 0, -5),
				EndDate:   now.AddDate(0, 0, 20),
				IsActive:  false,
				AutoRenew: false,
			},
			want: models.SubscriptionStatus{IsActive: false, DaysRemaining: 0, PlanName: NoActivePlanName},
		},
		{
			name: "истёкшая подписка с невыключенным флагом",
			sub: &models.UserSubscription{
				UserUID:   "uid-1",
				PlanID:    plans.PlanYearly,
				StartDate: now.AddDate(-1, -1, 0),
				EndDate:   now.AddDate(0, -1, 0),
				IsActive:  true,
				AutoRenew: true,
			},
			want: models.SubscriptionStatus{IsActive: false, DaysRemaining: 0, PlanName: "Yearly VIP"},
		},
		{
			name: "тариф удалён из каталога",
			sub: &models.UserSubscription{
				UserUID:   "uid-1",
				PlanID:    "legacy-plan",
				StartDate: now.AddDate(0, 0, -1),
				EndDate:   now.AddDate(0, 0, 10),
				IsActive:  true,
			},
			want: models.SubscriptionStatus{IsActive: true, DaysRemaining: 10, PlanName: UnknownPlanName},
		},
		{
			name: "неполные сутки округляются вверх",
			sub: &models.UserSubscription{
				UserUID:   "uid-1",
				PlanID:    plans.PlanMonthly,
				StartDate: now.AddDate(0, -1, 0),
				EndDate:   now.Add(36 * time.Hour),
				IsActive:  true,
			},
			want: models.SubscriptionStatus{IsActive: true, DaysRemaining: 2, PlanName: "Monthly VIP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("GetSubscription", mock.Anything, "uid-1").Return(tt.sub, nil)
			svc := newTestService(repo, now)

			got, err := svc.Status(context.Background(), "uid-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResubscribeReplacesPlan(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	repo := new(RepoMock)
	var last models.UserSubscription
	repo.On("UpsertSubscription", mock.Anything, mock.AnythingOfType("models.UserSubscription")).
		Run(func(args mock.Arguments) {
			last = args.Get(1).(models.UserSubscription)
		}).Return(nil)
	svc := newTestService(repo, now)

	_, err := svc.Subscribe(context.Background(), "uid-1", models.DummySubscribe{PlanID: plans.PlanYearly})
	require.NoError(t, err)
	_, err = svc.Subscribe(context.Background(), "uid-1", models.DummySubscribe{PlanID: plans.PlanMonthly})
	require.NoError(t, err)

	// Остаток годового тарифа не переносится: запись заменена целиком.
	assert.Equal(t, plans.PlanMonthly, last.PlanID)
	assert.Equal(t, now.AddDate(0, 1, 0), last.EndDate)

	repo.On("GetSubscription", mock.Anything, "uid-1").Return(&last, nil)
	status, err := svc.Status(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Monthly VIP", status.PlanName)
	assert.Equal(t, 31, status.DaysRemaining)
}
