package webhook

import (
	"regexp"
	"strings"
)

// Outcome classifies the semantic content of a webhook response.
type Outcome int

const (
	// OutcomeOK means the response carries a usable analysis.
	OutcomeOK Outcome = iota
	// OutcomeNotFound means the backend answered but had no analysis for the
	// symbol. Distinct from a transport failure and never cached.
	OutcomeNotFound
)

// minPayloadLen is the shortest response accepted as a real analysis.
const minPayloadLen = 10

// The backend signals failure in prose rather than status codes, so failure
// detection is keyword matching on the response text. This list is the single
// point of change for that contract.
var notFoundMarkers = []string{
	"error",
	"not found",
	"tidak ditemukan",
}

var undefinedPattern = regexp.MustCompile(`(?i)\bundefined\b`)

// Scrub trims the response and strips the literal "undefined" artifacts the
// upstream templating occasionally leaks into the text.
func Scrub(text string) string {
	trimmed := strings.TrimSpace(text)
	return strings.TrimSpace(undefinedPattern.ReplaceAllString(trimmed, ""))
}

// ClassifyOutcome decides whether scrubbed response text is a usable analysis
// or a domain "no result". Too-short responses count as not found.
func ClassifyOutcome(text string) Outcome {
	if len(text) < minPayloadLen {
		return OutcomeNotFound
	}
	lower := strings.ToLower(text)
	for _, marker := range notFoundMarkers {
		if strings.Contains(lower, marker) {
			return OutcomeNotFound
		}
	}
	return OutcomeOK
}
