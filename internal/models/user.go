package models

import "time"

// User представляет зарегистрированного пользователя приложения.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта
	Phone        string    // Номер телефона
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Bcrypt-хэш пароля
	Role         string    // Роль пользователя, admin или user
	CreatedAt    time.Time // Дата регистрации
}
