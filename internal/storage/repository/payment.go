package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// CreatePayment сохраняет платёж со статусом created и возвращает его идентификатор.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (string, error) {
	const op = "repository.CreatePayment"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	id := p.ID
	if id == "" {
		id = uuid.New().String()
	}
	query := `INSERT INTO payments (id, user_uid, purpose, amount, currency, status, provider, provider_ref)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		id, p.UserUID, p.Purpose, p.Amount, p.Currency, p.Status, p.Provider, p.ProviderRef).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPaymentsByUser возвращает платежи пользователя, новые первыми.
func (s *Storage) ListPaymentsByUser(ctx context.Context, userUID string) ([]*models.Payment, error) {
	const op = "repository.ListPaymentsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, purpose, amount, currency, status, provider, provider_ref, created_at, updated_at
			  FROM payments
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.UserUID, &p.Purpose, &p.Amount, &p.Currency,
			&p.Status, &p.Provider, &p.ProviderRef, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
