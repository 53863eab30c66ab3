package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"saham-analyst/internal/models"
)

// SQLiteStore implements Store using SQLite, so cached analyses survive
// restarts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed store at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS stock_analysis_cache (
		ticker TEXT PRIMARY KEY,
		analysis_text TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cache_created_at
		ON stock_analysis_cache(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the entry for ticker, or (nil, nil) when absent.
func (s *SQLiteStore) Load(ctx context.Context, ticker string) (*models.CacheEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT ticker, analysis_text, created_at
		FROM stock_analysis_cache
		WHERE ticker = ?`, ticker)

	var entry models.CacheEntry
	if err := row.Scan(&entry.Ticker, &entry.Payload, &entry.StoredAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("loading cache entry for %s: %w", ticker, err)
	}
	return &entry, nil
}

// Save stores or replaces the entry for its ticker.
func (s *SQLiteStore) Save(ctx context.Context, entry *models.CacheEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stock_analysis_cache (ticker, analysis_text, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			analysis_text = excluded.analysis_text,
			created_at = excluded.created_at`,
		entry.Ticker, entry.Payload, entry.StoredAt)
	if err != nil {
		return fmt.Errorf("saving cache entry for %s: %w", entry.Ticker, err)
	}
	return nil
}

// Delete removes the entry for ticker, if any.
func (s *SQLiteStore) Delete(ctx context.Context, ticker string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM stock_analysis_cache WHERE ticker = ?`, ticker)
	if err != nil {
		return fmt.Errorf("deleting cache entry for %s: %w", ticker, err)
	}
	return nil
}

// Stats counts total and still-fresh entries.
func (s *SQLiteStore) Stats(ctx context.Context, staleThreshold time.Duration) (models.CacheStats, error) {
	var stats models.CacheStats

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM stock_analysis_cache`)
	if err := row.Scan(&stats.TotalEntries); err != nil {
		return stats, fmt.Errorf("counting cache entries: %w", err)
	}

	cutoff := time.Now().Add(-staleThreshold)
	row = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM stock_analysis_cache WHERE created_at > ?`, cutoff)
	if err := row.Scan(&stats.ValidEntries); err != nil {
		return stats, fmt.Errorf("counting valid cache entries: %w", err)
	}

	return stats, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
