package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// CreateForm сохраняет заявку по категории и возвращает её идентификатор.
// Статус SMS-подтверждения у новой заявки всегда pending.
func (s *Storage) CreateForm(ctx context.Context, form models.CategoryForm) (string, error) {
	const op = "repository.CreateForm"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	payload, err := json.Marshal(form.Payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	id := form.ID
	if id == "" {
		id = uuid.New().String()
	}
	query := `INSERT INTO category_forms (id, category, payload, contact_phone, submitted_by, sms_status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID string
	err = s.DB.QueryRowContext(ctx, query,
		id, form.Category, payload, form.ContactPhone, form.SubmittedBy, models.SMSStatusPending).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListFormsByUser возвращает заявки пользователя, новые первыми.
func (s *Storage) ListFormsByUser(ctx context.Context, userUID string) ([]*models.CategoryForm, error) {
	const op = "repository.ListFormsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, category, payload, contact_phone, submitted_by, sms_status, sms_error, created_at
			  FROM category_forms
			  WHERE submitted_by = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CategoryForm
	for rows.Next() {
		var f models.CategoryForm
		var payload []byte
		if err := rows.Scan(&f.ID, &f.Category, &payload, &f.ContactPhone,
			&f.SubmittedBy, &f.SMSStatus, &f.SMSError, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &f.Payload); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateFormSMSStatus записывает результат отправки SMS-подтверждения.
func (s *Storage) UpdateFormSMSStatus(ctx context.Context, formID, status, smsError string) (int, error) {
	const op = "repository.UpdateFormSMSStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE category_forms SET sms_status = $2, sms_error = $3 WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, formID, status, smsError)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
