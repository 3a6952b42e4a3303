package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// ErrRestaurantNotFound возвращается, когда ресторан отсутствует в базе.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// Списки внутри карточки (specialist, photos) хранятся колонками JSONB.

// ListRestaurants возвращает активные рестораны каталога с пагинацией.
func (s *Storage) ListRestaurants(ctx context.Context, limit, offset int) ([]*models.Restaurant, error) {
	const op = "repository.ListRestaurants"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, category, description, specialist, phone, area, address,
			      price_for_two, open_time, rating, reviews, discount_normal, discount_vip,
			      photos, is_active, created_at, updated_at
			  FROM restaurants
			  WHERE is_active
			  ORDER BY name
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetRestaurant возвращает карточку ресторана по идентификатору.
func (s *Storage) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	const op = "repository.GetRestaurant"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, category, description, specialist, phone, area, address,
			      price_for_two, open_time, rating, reviews, discount_normal, discount_vip,
			      photos, is_active, created_at, updated_at
			  FROM restaurants WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)
	r, err := scanRestaurant(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrRestaurantNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// ListReviews возвращает отзывы ресторана, новые первыми.
func (s *Storage) ListReviews(ctx context.Context, restaurantID string) ([]*models.RestaurantReview, error) {
	const op = "repository.ListReviews"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, restaurant_id, user_uid, rating, text, created_at
			  FROM restaurant_reviews
			  WHERE restaurant_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.RestaurantReview
	for rows.Next() {
		var rv models.RestaurantReview
		if err := rows.Scan(&rv.ID, &rv.RestaurantID, &rv.UserUID, &rv.Rating, &rv.Text, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateReview вставляет новый отзыв и возвращает его идентификатор.
func (s *Storage) CreateReview(ctx context.Context, review models.RestaurantReview) (string, error) {
	const op = "repository.CreateReview"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	id := review.ID
	if id == "" {
		id = uuid.New().String()
	}
	query := `INSERT INTO restaurant_reviews (id, restaurant_id, user_uid, rating, text)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		id, review.RestaurantID, review.UserUID, review.Rating, review.Text).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

type scanFunc func(dest ...any) error

func scanRestaurant(scan scanFunc) (*models.Restaurant, error) {
	var r models.Restaurant
	var specialist, photos []byte
	err := scan(&r.ID, &r.Name, &r.Category, &r.Description, &specialist, &r.Phone,
		&r.Area, &r.Address, &r.PriceForTwo, &r.OpenTime, &r.Rating, &r.Reviews,
		&r.Discounts.NormalUsers, &r.Discounts.VIPUsers, &photos,
		&r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(specialist) > 0 {
		if err := json.Unmarshal(specialist, &r.Specialist); err != nil {
			return nil, err
		}
	}
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &r.Photos); err != nil {
			return nil, err
		}
	}
	return &r, nil
}
