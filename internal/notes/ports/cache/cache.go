// Package cache defines the cache interface used by the notes service.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс кэша для обогащения заметок именами пользователей.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
