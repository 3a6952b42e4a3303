package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// ErrUserNotFound возвращается, когда пользователь отсутствует в базе.
var ErrUserNotFound = errors.New("user not found")

// RegisterUser сохраняет нового пользователя и возвращает его uid.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "repository.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	uid := user.UID
	if uid == "" {
		uid = uuid.New().String()
	}
	query := `INSERT INTO users (uid, email, phone, username, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		uid, user.Email, user.Phone, user.Username, user.PasswordHash, user.Role).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "repository.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, phone, username, password_hash, role, created_at
			  FROM users WHERE username = $1`
	var u models.User
	err := s.DB.QueryRowContext(ctx, query, username).Scan(
		&u.UID, &u.Email, &u.Phone, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
