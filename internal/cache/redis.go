package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/vip-marketplace/internal/config"
)

// Redis реализует Cache поверх Redis. Значения сериализуются в JSON.
type Redis struct {
	Db *redis.Client
}

// InitServer подключается к Redis по настройкам из конфига и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Redis, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Redis{Db: db}, nil
}

// Get читает значение по ключу. Отсутствие ключа — промах, не ошибка.
func (c *Redis) Get(key string, result any) (bool, error) {
	const op = "cache.Redis.Get"
	val, err := c.Db.Get(context.Background(), key).Result()
	if err == redis.Nil {
		misses.WithLabelValues("redis").Inc()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	hits.WithLabelValues("redis").Inc()
	return true, nil
}

// Set сохраняет значение с временем жизни.
func (c *Redis) Set(key string, value any, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Db.Set(context.Background(), key, jsonData, expiration).Err()
}

// Invalidate удаляет значение по ключу.
func (c *Redis) Invalidate(key string) error {
	return c.Db.Del(context.Background(), key).Err()
}

// InvalidateAll очищает базу кеша. Сервис использует отдельный номер базы
// Redis, поэтому очистка не задевает чужие данные.
func (c *Redis) InvalidateAll() error {
	return c.Db.FlushDB(context.Background()).Err()
}
