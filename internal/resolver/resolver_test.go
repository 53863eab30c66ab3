package resolver

import (
	"regexp"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// fakeDirectory is a membership test over a fixed ticker set.
type fakeDirectory map[string]bool

func (d fakeDirectory) Contains(token string) bool {
	return d[token]
}

var testDirectory = fakeDirectory{
	"BBCA": true,
	"BBRI": true,
	"TLKM": true,
	"ANTM": true,
	"GOTO": true,
}

func TestResolve(t *testing.T) {
	r := New(testDirectory)

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"bare ticker", "BBCA", "BBCA", true},
		{"lowercase ticker", "bbca", "BBCA", true},
		{"directory match among noise", "gimana kabar BBCA hari ini", "BBCA", true},
		{"directory match wins over earlier 4-letter token", "XPLR dan BBCA", "BBCA", true},
		{"four letter heuristic", "minta analisa XPLR", "XPLR", true},
		{"heuristic skips stopwords", "YANG mana XPLR", "XPLR", true},
		{"lone stopword readmitted by fallback", "BANK", "BANK", true},
		{"lone five letter token", "SMGRX", "SMGRX", true},
		{"stopword with company ticker", "saham DARI ANTM", "ANTM", true},
		{"punctuation stripped", "analisa: BBRI!", "BBRI", true},
		{"empty input", "", "", false},
		{"whitespace only", "   ", "", false},
		{"only short tokens", "di ke in", "", false},
		{"stopwords only, multiple tokens", "YANG DARI PADA", "", false},
		{"long words only", "tolong jelaskan sesuatu", "", false},
		{"no candidate among many", "apa kabar semuanya sekarang", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveNilDirectory(t *testing.T) {
	r := New(nil)
	got, ok := r.Resolve("minta analisa XPLR")
	if !ok || got != "XPLR" {
		t.Errorf("Resolve without directory = (%q, %v), want (XPLR, true)", got, ok)
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	tokens := tokenize("a bb ccc dddd")
	if len(tokens) != 2 || tokens[0] != "CCC" || tokens[1] != "DDDD" {
		t.Errorf("tokenize = %v, want [CCC DDDD]", tokens)
	}
}

// Property: Resolve is a pure function of its input, its result always has
// ticker shape, and it never panics on arbitrary text.
func TestProperty_ResolveShapeAndDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	r := New(testDirectory)
	tickerShape := regexp.MustCompile(`^[A-Z0-9]{3,6}$`)

	properties.Property("resolved ticker matches [A-Z0-9]{3,6}", prop.ForAll(
		func(text string) bool {
			ticker, ok := r.Resolve(text)
			if !ok {
				return ticker == ""
			}
			return tickerShape.MatchString(ticker)
		},
		gen.AnyString(),
	))

	properties.Property("resolution is deterministic", prop.ForAll(
		func(text string) bool {
			first, okFirst := r.Resolve(text)
			second, okSecond := r.Resolve(text)
			return first == second && okFirst == okSecond
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
