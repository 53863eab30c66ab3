// Package store provides persistence for cached analysis entries.
package store

import (
	"context"
	"time"

	"saham-analyst/internal/models"
)

// Store is the backing key-value store for the analysis cache. Access may be
// remote, so every call takes a context. A missing entry is (nil, nil), not
// an error.
type Store interface {
	Load(ctx context.Context, ticker string) (*models.CacheEntry, error)
	Save(ctx context.Context, entry *models.CacheEntry) error
	Delete(ctx context.Context, ticker string) error
	Stats(ctx context.Context, staleThreshold time.Duration) (models.CacheStats, error)
	Close() error
}
