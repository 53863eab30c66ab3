package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"saham-analyst/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	storedAt := time.Now().Truncate(time.Second)
	entry := &models.CacheEntry{
		Ticker:   "BBCA",
		Payload:  "analisis fundamental lengkap",
		StoredAt: storedAt,
	}
	if err := s.Save(ctx, entry); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load(ctx, "BBCA")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil for saved entry")
	}
	if loaded.Ticker != entry.Ticker || loaded.Payload != entry.Payload {
		t.Errorf("loaded = %+v, want %+v", loaded, entry)
	}
	if !loaded.StoredAt.Equal(storedAt) {
		t.Errorf("StoredAt = %s, want %s", loaded.StoredAt, storedAt)
	}
}

func TestSQLiteLoadMiss(t *testing.T) {
	s := newTestSQLiteStore(t)

	loaded, err := s.Load(context.Background(), "ZZZZ")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != nil {
		t.Errorf("Load miss = %+v, want nil", loaded)
	}
}

func TestSQLiteSaveReplaces(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	first := &models.CacheEntry{Ticker: "BBCA", Payload: "versi lama", StoredAt: time.Now().Add(-time.Hour)}
	second := &models.CacheEntry{Ticker: "BBCA", Payload: "versi baru", StoredAt: time.Now()}

	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load(ctx, "BBCA")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Payload != "versi baru" {
		t.Errorf("Payload = %q, want the replacing write", loaded.Payload)
	}

	stats, err := s.Stats(ctx, time.Hour)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalEntries != 1 {
		t.Errorf("TotalEntries = %d, want 1 after replace", stats.TotalEntries)
	}
}

func TestSQLiteDelete(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	entry := &models.CacheEntry{Ticker: "TLKM", Payload: "analisis", StoredAt: time.Now()}
	if err := s.Save(ctx, entry); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Delete(ctx, "TLKM"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	loaded, err := s.Load(ctx, "TLKM")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != nil {
		t.Error("entry still present after Delete")
	}

	// Deleting a missing ticker is not an error.
	if err := s.Delete(ctx, "TLKM"); err != nil {
		t.Errorf("Delete of absent entry failed: %v", err)
	}
}

func TestSQLiteStats(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	now := time.Now()

	entries := []*models.CacheEntry{
		{Ticker: "BBCA", Payload: "segar", StoredAt: now.Add(-10 * time.Minute)},
		{Ticker: "TLKM", Payload: "segar", StoredAt: now.Add(-30 * time.Minute)},
		{Ticker: "ASII", Payload: "basi", StoredAt: now.Add(-3 * time.Hour)},
	}
	for _, e := range entries {
		if err := s.Save(ctx, e); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	stats, err := s.Stats(ctx, time.Hour)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalEntries != 3 || stats.ValidEntries != 2 {
		t.Errorf("Stats = %+v, want 3 total / 2 valid", stats)
	}
}
