// Package models defines the shared data types for the application.
package models

import "time"

// Source indicates where an analysis payload was served from.
type Source string

const (
	SourceCache   Source = "cache"
	SourceNetwork Source = "network"
)

// CacheEntry is one cached analysis result for one ticker.
// Entries are replaced wholesale on refresh, never partially mutated.
type CacheEntry struct {
	Ticker   string    `json:"ticker"`
	Payload  string    `json:"payload"`
	StoredAt time.Time `json:"stored_at"`
}

// Age returns how old the entry is relative to now.
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}

// Analysis is the result handed back to callers of the analysis cache.
type Analysis struct {
	Ticker  string        `json:"ticker"`
	Source  Source        `json:"source"`
	Payload string        `json:"payload"`
	Age     time.Duration `json:"age"`
}

// AgeMinutes returns the age rounded down to whole minutes.
// Network results always report 0.
func (a *Analysis) AgeMinutes() int {
	return int(a.Age / time.Minute)
}

// StockInfo holds the static directory metadata for one listed ticker.
type StockInfo struct {
	Ticker   string `json:"ticker"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

// CacheStats summarizes the state of the persistent analysis cache.
type CacheStats struct {
	TotalEntries int `json:"total_entries"`
	ValidEntries int `json:"valid_entries"`
}
