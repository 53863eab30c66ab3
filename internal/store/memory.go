package store

import (
	"context"
	"sync"
	"time"

	"saham-analyst/internal/models"
)

// MemoryStore is a process-local Store. Used when no cache database is
// configured and as a test double.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]models.CacheEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]models.CacheEntry),
	}
}

// Load returns the entry for ticker, or (nil, nil) when absent.
func (s *MemoryStore) Load(ctx context.Context, ticker string) (*models.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[ticker]
	if !ok {
		return nil, nil
	}
	copy := entry
	return &copy, nil
}

// Save stores or replaces the entry for its ticker.
func (s *MemoryStore) Save(ctx context.Context, entry *models.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.Ticker] = *entry
	return nil
}

// Delete removes the entry for ticker, if any.
func (s *MemoryStore) Delete(ctx context.Context, ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, ticker)
	return nil
}

// Stats counts total and still-fresh entries.
func (s *MemoryStore) Stats(ctx context.Context, staleThreshold time.Duration) (models.CacheStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.CacheStats{TotalEntries: len(s.entries)}
	now := time.Now()
	for _, entry := range s.entries {
		if entry.Age(now) <= staleThreshold {
			stats.ValidEntries++
		}
	}
	return stats, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
