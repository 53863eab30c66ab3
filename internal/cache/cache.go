// Package cache provides the staleness-aware analysis cache that guards the
// rate-limited analysis webhook.
package cache

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	apperrors "saham-analyst/internal/errors"
	"saham-analyst/internal/logging"
	"saham-analyst/internal/models"
	"saham-analyst/internal/store"
)

// Fetcher is the remote capability the cache guards.
type Fetcher interface {
	FetchAnalysis(ctx context.Context, ticker string) (string, error)
}

// Options configures an AnalysisCache.
type Options struct {
	// StaleThreshold is the age past which a cached entry is still served
	// but refreshed in the background.
	StaleThreshold time.Duration
	// FetchBound caps how long any single fetch owned by the cache may run,
	// independent of the caller's context.
	FetchBound time.Duration
}

// DefaultOptions returns the default cache options.
func DefaultOptions() Options {
	return Options{
		StaleThreshold: 60 * time.Minute,
		FetchBound:     35 * time.Second,
	}
}

// AnalysisCache serves analysis text per ticker with at most one concurrent
// remote fetch per ticker. Reads prefer the store: a fresh entry is served
// as-is, a stale entry is served immediately while a background refresh runs,
// and only a true miss blocks on the webhook.
type AnalysisCache struct {
	store   store.Store
	fetcher Fetcher
	logger  zerolog.Logger
	opts    Options

	mu       sync.Mutex
	inflight map[string]*flight
	keyLocks map[string]*sync.Mutex
}

// flight is one in-progress remote fetch, shared by every caller that asked
// for the same ticker while it was running.
type flight struct {
	done    chan struct{}
	payload string
	err     error
}

// New creates an AnalysisCache over the given store and fetcher.
func New(st store.Store, fetcher Fetcher, opts Options, logger zerolog.Logger) *AnalysisCache {
	if opts.StaleThreshold <= 0 {
		opts.StaleThreshold = DefaultOptions().StaleThreshold
	}
	if opts.FetchBound <= 0 {
		opts.FetchBound = DefaultOptions().FetchBound
	}
	return &AnalysisCache{
		store:    st,
		fetcher:  fetcher,
		logger:   logger,
		opts:     opts,
		inflight: make(map[string]*flight),
		keyLocks: make(map[string]*sync.Mutex),
	}
}

// Get returns the analysis for ticker. A usable cached entry always succeeds;
// errors surface only on a true miss, as either a TransportError or a
// NotFoundError from the fetcher.
func (c *AnalysisCache) Get(ctx context.Context, ticker string) (*models.Analysis, error) {
	entry, err := c.store.Load(ctx, ticker)
	if err != nil {
		// A broken store degrades to a miss rather than failing the request.
		c.logger.Warn().Err(err).Str("ticker", ticker).Msg("Cache store read failed")
		entry = nil
	}

	if entry != nil {
		age := entry.Age(time.Now())
		stale := age > c.opts.StaleThreshold
		logging.LogCacheHit(c.logger, ticker, age, stale)

		if stale {
			go c.refresh(ticker)
		}
		return &models.Analysis{
			Ticker:  ticker,
			Source:  models.SourceCache,
			Payload: entry.Payload,
			Age:     age,
		}, nil
	}

	logging.LogCacheMiss(c.logger, ticker)
	payload, err := c.fetchShared(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return &models.Analysis{
		Ticker:  ticker,
		Source:  models.SourceNetwork,
		Payload: payload,
		Age:     0,
	}, nil
}

// Put validates, scrubs, and stores payload for ticker with StoredAt = now.
// An entry already newer than now is never overwritten, so a slow refresh
// cannot regress a fresher write.
func (c *AnalysisCache) Put(ctx context.Context, ticker, payload string) error {
	return c.putAt(ctx, ticker, payload, time.Now())
}

func (c *AnalysisCache) putAt(ctx context.Context, ticker, payload string, storedAt time.Time) error {
	scrubbed := scrubPayload(payload)
	if scrubbed == "" {
		return apperrors.NewValidationError("payload", payload, "empty after scrubbing")
	}

	unlock := c.lockKey(ticker)
	defer unlock()

	existing, err := c.store.Load(ctx, ticker)
	if err != nil {
		return apperrors.Wrap(err, "loading existing entry")
	}
	if existing != nil && existing.StoredAt.After(storedAt) {
		// Last writer wins by timestamp, not by completion order.
		c.logger.Debug().Str("ticker", ticker).Msg("Skipping write of older entry")
		return nil
	}

	return c.store.Save(ctx, &models.CacheEntry{
		Ticker:   ticker,
		Payload:  scrubbed,
		StoredAt: storedAt,
	})
}

// Invalidate removes the cached entry for ticker.
func (c *AnalysisCache) Invalidate(ctx context.Context, ticker string) error {
	return c.store.Delete(ctx, ticker)
}

// Stats reports the state of the backing store.
func (c *AnalysisCache) Stats(ctx context.Context) (models.CacheStats, error) {
	return c.store.Stats(ctx, c.opts.StaleThreshold)
}

// StaleThreshold returns the configured staleness threshold.
func (c *AnalysisCache) StaleThreshold() time.Duration {
	return c.opts.StaleThreshold
}

// fetchShared performs the remote fetch for ticker, attaching to an already
// running fetch when one exists. The fetch itself runs detached under its own
// bounded context, so a caller that gives up does not leave the in-flight
// marker stuck: the fetch completes or times out on its own and the marker is
// cleared either way.
func (c *AnalysisCache) fetchShared(ctx context.Context, ticker string) (string, error) {
	c.mu.Lock()
	if f, ok := c.inflight[ticker]; ok {
		c.mu.Unlock()
		return f.wait(ctx)
	}

	f := &flight{done: make(chan struct{})}
	c.inflight[ticker] = f
	c.mu.Unlock()

	go c.run(f, ticker)
	return f.wait(ctx)
}

func (f *flight) wait(ctx context.Context) (string, error) {
	select {
	case <-f.done:
		return f.payload, f.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// run executes one remote fetch and stores the result. It owns clearing the
// in-flight marker for its ticker.
func (c *AnalysisCache) run(f *flight, ticker string) {
	defer func() {
		if r := recover(); r != nil {
			f.err = fmt.Errorf("fetch panicked: %v", r)
		}
		c.mu.Lock()
		delete(c.inflight, ticker)
		c.mu.Unlock()
		close(f.done)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.FetchBound)
	defer cancel()

	payload, err := c.fetcher.FetchAnalysis(ctx, ticker)
	if err != nil {
		f.err = err
		return
	}
	if err := c.putAt(ctx, ticker, payload, time.Now()); err != nil {
		f.err = err
		return
	}
	f.payload = scrubPayload(payload)
}

// refresh re-fetches a stale ticker in the background. Fire-and-forget with
// its own error boundary: a failure leaves the stale entry in place and is
// only logged, never propagated.
func (c *AnalysisCache) refresh(ticker string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Str("ticker", ticker).Interface("panic", r).Msg("Background refresh panicked")
		}
	}()

	_, err := c.fetchShared(context.Background(), ticker)
	logging.LogRefresh(c.logger, ticker, err)
}

// lockKey takes the per-ticker write lock. Writes for different tickers never
// contend.
func (c *AnalysisCache) lockKey(ticker string) func() {
	c.mu.Lock()
	lock, ok := c.keyLocks[ticker]
	if !ok {
		lock = &sync.Mutex{}
		c.keyLocks[ticker] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

var placeholderPattern = regexp.MustCompile(`(?i)\b(undefined|null)\b`)

// scrubPayload trims payload and strips literal placeholder artifacts that
// upstream templating leaks into the text.
func scrubPayload(payload string) string {
	trimmed := strings.TrimSpace(payload)
	return strings.TrimSpace(placeholderPattern.ReplaceAllString(trimmed, ""))
}
