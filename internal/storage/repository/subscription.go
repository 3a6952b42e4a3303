package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// UpsertSubscription заменяет подписку пользователя целиком: повторное
// оформление сбрасывает даты и тариф, остаток прежнего срока не переносится.
func (s *Storage) UpsertSubscription(ctx context.Context, sub models.UserSubscription) error {
	const op = "repository.UpsertSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_subscriptions
			      (user_uid, plan_id, start_date, end_date, is_active, auto_renew, price_paid, coupon_code)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (user_uid) DO UPDATE SET
			      plan_id = EXCLUDED.plan_id,
			      start_date = EXCLUDED.start_date,
			      end_date = EXCLUDED.end_date,
			      is_active = EXCLUDED.is_active,
			      auto_renew = EXCLUDED.auto_renew,
			      price_paid = EXCLUDED.price_paid,
			      coupon_code = EXCLUDED.coupon_code`
	_, err := s.DB.ExecContext(ctx, query,
		sub.UserUID, sub.PlanID, sub.StartDate, sub.EndDate,
		sub.IsActive, sub.AutoRenew, sub.PricePaid, sub.CouponCode)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSubscription возвращает подписку пользователя или nil, если её нет.
func (s *Storage) GetSubscription(ctx context.Context, userUID string) (*models.UserSubscription, error) {
	const op = "repository.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, plan_id, start_date, end_date, is_active, auto_renew, price_paid, coupon_code
			  FROM user_subscriptions WHERE user_uid = $1`
	var sub models.UserSubscription
	err := s.DB.QueryRowContext(ctx, query, userUID).Scan(
		&sub.UserUID, &sub.PlanID, &sub.StartDate, &sub.EndDate,
		&sub.IsActive, &sub.AutoRenew, &sub.PricePaid, &sub.CouponCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// CancelSubscription снимает флаги is_active и auto_renew, сохраняя даты.
// Возвращает количество затронутых строк: ноль означает, что подписки не было.
func (s *Storage) CancelSubscription(ctx context.Context, userUID string) (int, error) {
	const op = "repository.CancelSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE user_subscriptions
			  SET is_active = FALSE, auto_renew = FALSE
			  WHERE user_uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
