// Package chat orchestrates a user turn: ticker resolution, cache lookup, and
// mapping errors to user-facing messages.
package chat

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"saham-analyst/internal/cache"
	apperrors "saham-analyst/internal/errors"
	"saham-analyst/internal/models"
	"saham-analyst/internal/resolver"
	"saham-analyst/internal/universe"
)

// Outcome classifies a reply for presentation purposes.
type Outcome string

const (
	// OutcomeAnalysis is a successful analysis payload.
	OutcomeAnalysis Outcome = "analysis"
	// OutcomeClarify means no ticker could be resolved from the input.
	OutcomeClarify Outcome = "clarify"
	// OutcomeNotFound means the backend does not know the ticker.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeError is a transport-level failure with nothing cached.
	OutcomeError Outcome = "error"
)

// Reply is one assistant answer.
type Reply struct {
	Outcome    Outcome       `json:"outcome"`
	Ticker     string        `json:"ticker,omitempty"`
	Text       string        `json:"text"`
	Source     models.Source `json:"source,omitempty"`
	AgeMinutes int           `json:"age_minutes,omitempty"`
	Sector     string        `json:"sector,omitempty"`
	Industry   string        `json:"industry,omitempty"`
}

// Session wires the resolver and the analysis cache into one ask/answer flow.
type Session struct {
	resolver *resolver.Resolver
	cache    *cache.AnalysisCache
	dir      *universe.Directory
	logger   zerolog.Logger
	showAge  bool
}

// NewSession creates a chat session.
func NewSession(res *resolver.Resolver, c *cache.AnalysisCache, dir *universe.Directory, showAge bool, logger zerolog.Logger) *Session {
	return &Session{
		resolver: res,
		cache:    c,
		dir:      dir,
		logger:   logger,
		showAge:  showAge,
	}
}

// Ask handles one user turn. It never returns an error; every failure mode is
// mapped to a user-facing reply.
func (s *Session) Ask(ctx context.Context, text string) *Reply {
	ticker, ok := s.resolver.Resolve(text)
	if !ok {
		return &Reply{
			Outcome: OutcomeClarify,
			Text: "Saya belum menemukan kode saham di pesan Anda.\n" +
				"Ketik kode saham Indonesia yang terdaftar di BEI, contoh: BBCA, BBRI, TLKM.",
		}
	}

	analysis, err := s.cache.Get(ctx, ticker)
	if err != nil {
		return s.replyForError(ticker, err)
	}

	reply := &Reply{
		Outcome:    OutcomeAnalysis,
		Ticker:     ticker,
		Text:       analysis.Payload,
		Source:     analysis.Source,
		AgeMinutes: analysis.AgeMinutes(),
	}
	if info, known := s.dir.Lookup(ticker); known {
		reply.Sector = info.Sector
		reply.Industry = info.Industry
	}
	if s.showAge && analysis.Source == models.SourceCache && analysis.AgeMinutes() > 0 {
		reply.Text = fmt.Sprintf("%s\n\n_(data cache, %d menit yang lalu)_", reply.Text, analysis.AgeMinutes())
	}
	return reply
}

func (s *Session) replyForError(ticker string, err error) *Reply {
	if apperrors.IsNotFound(err) {
		return &Reply{
			Outcome: OutcomeNotFound,
			Ticker:  ticker,
			Text: fmt.Sprintf("Kode Saham Tidak Ditemukan\n\n"+
				"Kode saham %s tidak valid atau tidak tersedia.\n"+
				"Tips: pastikan kode saham benar (contoh: BBCA, BBRI, TLKM) dan terdaftar di BEI.", ticker),
		}
	}

	s.logger.Error().Err(err).Str("ticker", ticker).Msg("Analysis request failed")
	return &Reply{
		Outcome: OutcomeError,
		Ticker:  ticker,
		Text: fmt.Sprintf("Gagal Mengambil Data\n\n"+
			"Tidak dapat mengambil analisis untuk %s saat ini.\n"+
			"Saran: periksa koneksi Anda dan coba lagi dalam beberapa saat.", ticker),
	}
}
