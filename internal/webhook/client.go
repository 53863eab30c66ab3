// Package webhook provides clients for the n8n analysis and news webhooks.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	apperrors "saham-analyst/internal/errors"
	"saham-analyst/internal/logging"
)

// Config holds the webhook endpoints and request bound.
type Config struct {
	AnalysisURL string
	NewsURL     string
	Timeout     time.Duration
}

// Client calls the analysis and news webhooks. Both endpoints accept a JSON
// POST body {"prompt": "<TICKER>"} and answer with text.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a webhook client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

// FetchAnalysis requests an analysis for ticker and validates the response.
// Transport failures and timeouts return a TransportError; responses that the
// backend uses to signal "no analysis for this symbol" return a NotFoundError
// and must never be cached.
func (c *Client) FetchAnalysis(ctx context.Context, ticker string) (string, error) {
	start := time.Now()
	raw, err := c.post(ctx, c.cfg.AnalysisURL, ticker)
	logging.LogFetch(c.logger, ticker, time.Since(start), err)
	if err != nil {
		return "", err
	}

	cleaned := Scrub(raw)
	if ClassifyOutcome(cleaned) == OutcomeNotFound {
		return "", apperrors.NewNotFoundError(ticker, "backend returned no analysis")
	}
	return cleaned, nil
}

// FetchNews requests news items for ticker. The news webhook is loose about
// its response shape: a JSON array of {"output": ...}, a single such object,
// a bare JSON string, or plain text. All are normalized to a string slice.
func (c *Client) FetchNews(ctx context.Context, ticker string) ([]string, error) {
	raw, err := c.post(ctx, c.cfg.NewsURL, ticker)
	if err != nil {
		return nil, err
	}
	return parseNewsPayload(raw), nil
}

func (c *Client) post(ctx context.Context, url, ticker string) (string, error) {
	if url == "" {
		return "", apperrors.NewTransportError(url, fmt.Errorf("webhook URL not configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(promptRequest{Prompt: ticker})
	if err != nil {
		return "", apperrors.Wrap(err, "encoding webhook request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewTransportError(url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTransportError(url, apperrors.ErrTimeout)
		}
		return "", apperrors.NewTransportError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.NewTransportError(url, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewTransportError(url, err)
	}
	return string(data), nil
}

type newsItem struct {
	Output string `json:"output"`
}

func parseNewsPayload(raw string) []string {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return nil
	}

	var list []newsItem
	if err := json.Unmarshal(trimmed, &list); err == nil {
		var outputs []string
		for _, item := range list {
			if item.Output != "" {
				outputs = append(outputs, item.Output)
			}
		}
		return outputs
	}

	var single newsItem
	if err := json.Unmarshal(trimmed, &single); err == nil && single.Output != "" {
		return []string{single.Output}
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		if text == "" {
			return nil
		}
		return []string{text}
	}

	return []string{string(trimmed)}
}
