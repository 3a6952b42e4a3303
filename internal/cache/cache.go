// Package cache предоставляет кеш со временем жизни записей для слоя данных.
// Доступны два бэкенда с одинаковым контрактом: Redis (общий кеш для
// нескольких экземпляров сервиса) и кеш в памяти процесса.
package cache

import "time"

// Cache описывает контракт кеша: значение живет до абсолютного момента
// истечения, свежая запись перезаписывает предыдущую, инвалидация удаляет
// запись и заставляет следующий запрос идти к источнику.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	// Возвращает false без ошибки, если записи нет или она истекла.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
	// InvalidateAll полностью очищает кеш (например, при выходе пользователя).
	InvalidateAll() error
}
