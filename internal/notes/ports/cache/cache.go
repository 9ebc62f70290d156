// Package cache defines the cache port used by the notes service.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss возвращается Get, если ключа нет в кеше.
var ErrCacheMiss = errors.New("cache miss")

// Cache определяет операции с внешним кешем.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	// Set сохраняет значение; ttl <= 0 означает TTL по умолчанию.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}
