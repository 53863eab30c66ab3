// Package resolver extracts a single candidate stock ticker from free-form
// user text.
package resolver

import "strings"

const (
	minTokenLen  = 3
	maxTickerLen = 6
	exactHintLen = 4
)

// Membership is the read-only ticker lookup the resolver consults.
type Membership interface {
	Contains(token string) bool
}

// Resolver maps raw user input to at most one ticker using a deterministic
// priority cascade. It performs no I/O and never fails.
type Resolver struct {
	dir Membership
}

// New creates a resolver backed by the given ticker directory.
func New(dir Membership) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve returns the first ticker candidate found in text, applying in
// order: directory match, four-letter heuristic, single-word fallback.
// The boolean is false when no candidate qualifies.
func (r *Resolver) Resolve(text string) (string, bool) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return "", false
	}

	// Stage 1: first token that is a known ticker wins.
	if r.dir != nil {
		for _, tok := range tokens {
			if r.dir.Contains(tok) {
				return tok, true
			}
		}
	}

	// Stage 2: first exactly-four-letter token that is not a common word.
	// IDX tickers are four characters, so length alone is a strong signal.
	for _, tok := range tokens {
		if len(tok) == exactHintLen && !isStopword(tok) {
			return tok, true
		}
	}

	// Stage 3: a lone short token is taken at face value, even if it was
	// rejected as a stopword above. Preserved from the observed behavior of
	// the heuristic; a single-word query is almost always a ticker attempt.
	if len(tokens) == 1 && len(tokens[0]) >= minTokenLen && len(tokens[0]) <= maxTickerLen {
		return tokens[0], true
	}

	return "", false
}

// tokenize uppercases the input, maps every character outside [A-Z0-9] and
// whitespace to a space, and drops tokens shorter than three characters.
func tokenize(text string) []string {
	normalized := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z':
			return c - ('a' - 'A')
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return c
		default:
			return ' '
		}
	}, text)

	fields := strings.Fields(normalized)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
