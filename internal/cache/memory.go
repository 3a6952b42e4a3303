package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory реализует Cache в памяти процесса. Записи хранятся с абсолютным
// моментом истечения; истекшая запись удаляется при первом обращении.
// Значения сериализуются в JSON, чтобы контракт совпадал с Redis-бэкендом.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory создает пустой кеш в памяти.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get читает значение по ключу. Истекшая или отсутствующая запись — промах.
func (c *Memory) Get(key string, result any) (bool, error) {
	const op = "cache.Memory.Get"
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		misses.WithLabelValues("memory").Inc()
		return false, nil
	}
	if err := json.Unmarshal(entry.data, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	hits.WithLabelValues("memory").Inc()
	return true, nil
}

// Set сохраняет значение с временем жизни, перезаписывая предыдущее.
func (c *Memory) Set(key string, value any, expiration time.Duration) error {
	const op = "cache.Memory.Set"
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expiresAt: c.now().Add(expiration)}
	c.mu.Unlock()
	return nil
}

// Invalidate удаляет значение по ключу.
func (c *Memory) Invalidate(key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// InvalidateAll полностью очищает кеш.
func (c *Memory) InvalidateAll() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
