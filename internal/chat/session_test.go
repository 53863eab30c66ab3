package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"saham-analyst/internal/cache"
	apperrors "saham-analyst/internal/errors"
	"saham-analyst/internal/models"
	"saham-analyst/internal/resolver"
	"saham-analyst/internal/store"
	"saham-analyst/internal/universe"
)

type stubFetcher struct {
	payload string
	err     error
}

func (f *stubFetcher) FetchAnalysis(ctx context.Context, ticker string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.payload, nil
}

func newTestSession(t *testing.T, fetcher cache.Fetcher) (*Session, *store.MemoryStore) {
	t.Helper()
	dir := universe.MustLoad()
	st := store.NewMemoryStore()
	c := cache.New(st, fetcher, cache.Options{
		StaleThreshold: 60 * time.Minute,
		FetchBound:     time.Second,
	}, zerolog.Nop())
	return NewSession(resolver.New(dir), c, dir, true, zerolog.Nop()), st
}

func TestAskClarifyWhenNoTicker(t *testing.T) {
	s, _ := newTestSession(t, &stubFetcher{})

	reply := s.Ask(context.Background(), "apa kabar semuanya sekarang")
	if reply.Outcome != OutcomeClarify {
		t.Fatalf("Outcome = %s, want clarify", reply.Outcome)
	}
	if !strings.Contains(reply.Text, "BBCA") {
		t.Errorf("clarify message should include example tickers, got %q", reply.Text)
	}
}

func TestAskAnalysisFromNetwork(t *testing.T) {
	s, _ := newTestSession(t, &stubFetcher{payload: "analisis fundamental BBCA sangat solid"})

	reply := s.Ask(context.Background(), "gimana kabar BBCA hari ini")
	if reply.Outcome != OutcomeAnalysis {
		t.Fatalf("Outcome = %s, want analysis: %s", reply.Outcome, reply.Text)
	}
	if reply.Ticker != "BBCA" || reply.Source != models.SourceNetwork {
		t.Errorf("reply = %+v, want BBCA from network", reply)
	}
	if reply.Sector != "Perbankan" {
		t.Errorf("Sector = %q, want directory metadata attached", reply.Sector)
	}
}

func TestAskAnnotatesCacheAge(t *testing.T) {
	s, st := newTestSession(t, &stubFetcher{payload: "pengganti"})
	st.Save(context.Background(), &models.CacheEntry{
		Ticker:   "BBCA",
		Payload:  "analisis tersimpan",
		StoredAt: time.Now().Add(-20 * time.Minute),
	})

	reply := s.Ask(context.Background(), "BBCA")
	if reply.Outcome != OutcomeAnalysis || reply.Source != models.SourceCache {
		t.Fatalf("reply = %+v, want cached analysis", reply)
	}
	if reply.AgeMinutes < 19 || reply.AgeMinutes > 21 {
		t.Errorf("AgeMinutes = %d, want about 20", reply.AgeMinutes)
	}
	if !strings.Contains(reply.Text, "menit yang lalu") {
		t.Errorf("cached reply should carry an age annotation, got %q", reply.Text)
	}
}

func TestAskNotFound(t *testing.T) {
	s, _ := newTestSession(t, &stubFetcher{err: apperrors.NewNotFoundError("XPLR", "no analysis")})

	reply := s.Ask(context.Background(), "minta analisa XPLR")
	if reply.Outcome != OutcomeNotFound {
		t.Fatalf("Outcome = %s, want not_found", reply.Outcome)
	}
	if !strings.Contains(reply.Text, "XPLR") {
		t.Errorf("not-found message should name the ticker, got %q", reply.Text)
	}
}

func TestAskTransportError(t *testing.T) {
	s, _ := newTestSession(t, &stubFetcher{
		err: apperrors.NewTransportError("http://x", errors.New("connection refused")),
	})

	reply := s.Ask(context.Background(), "BBCA")
	if reply.Outcome != OutcomeError {
		t.Fatalf("Outcome = %s, want error", reply.Outcome)
	}
	if !strings.Contains(reply.Text, "coba lagi") {
		t.Errorf("transport error message should suggest retrying, got %q", reply.Text)
	}
}

func TestAskServesStaleOnBackendFailure(t *testing.T) {
	s, st := newTestSession(t, &stubFetcher{
		err: apperrors.NewTransportError("http://x", errors.New("down")),
	})
	st.Save(context.Background(), &models.CacheEntry{
		Ticker:   "BBCA",
		Payload:  "analisis lama tapi berguna",
		StoredAt: time.Now().Add(-3 * time.Hour),
	})

	reply := s.Ask(context.Background(), "BBCA")
	if reply.Outcome != OutcomeAnalysis {
		t.Fatalf("Outcome = %s, want degraded-mode analysis", reply.Outcome)
	}
	if !strings.Contains(reply.Text, "analisis lama tapi berguna") {
		t.Errorf("stale payload should be served when the backend is down, got %q", reply.Text)
	}
}
