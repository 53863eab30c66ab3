package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	apperrors "saham-analyst/internal/errors"
)

const sampleAnalysis = "BBCA menunjukkan fundamental yang solid dengan PER rendah dan ROE tinggi."

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		AnalysisURL: server.URL,
		NewsURL:     server.URL,
		Timeout:     5 * time.Second,
	}, zerolog.Nop())
	return client, server
}

func TestFetchAnalysis(t *testing.T) {
	var gotBody promptRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Write([]byte("  " + sampleAnalysis + " undefined "))
	})

	payload, err := client.FetchAnalysis(context.Background(), "BBCA")
	if err != nil {
		t.Fatalf("FetchAnalysis failed: %v", err)
	}
	if gotBody.Prompt != "BBCA" {
		t.Errorf("request prompt = %q, want BBCA", gotBody.Prompt)
	}
	if payload != sampleAnalysis {
		t.Errorf("payload = %q, want scrubbed analysis", payload)
	}
}

func TestFetchAnalysisNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Maaf, kode saham tidak ditemukan di BEI"))
	})

	_, err := client.FetchAnalysis(context.Background(), "ZZZZ")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestFetchAnalysisServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchAnalysis(context.Background(), "BBCA")
	if !apperrors.IsTransport(err) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestFetchAnalysisTimeout(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(sampleAnalysis))
	})
	client.cfg.Timeout = 50 * time.Millisecond
	_ = server

	_, err := client.FetchAnalysis(context.Background(), "BBCA")
	if !apperrors.IsTransport(err) {
		t.Fatalf("expected TransportError on timeout, got %v", err)
	}
	if !apperrors.Is(err, apperrors.ErrTimeout) {
		t.Fatalf("expected error chain to contain ErrTimeout, got %v", err)
	}
}

func TestFetchAnalysisUnconfigured(t *testing.T) {
	client := NewClient(Config{}, zerolog.Nop())
	_, err := client.FetchAnalysis(context.Background(), "BBCA")
	if !apperrors.IsTransport(err) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestFetchNewsShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"array of outputs", `[{"output":"berita satu"},{"output":"berita dua"}]`, []string{"berita satu", "berita dua"}},
		{"single object", `{"output":"berita tunggal"}`, []string{"berita tunggal"}},
		{"json string", `"berita polos"`, []string{"berita polos"}},
		{"plain text", "berita teks biasa", []string{"berita teks biasa"}},
		{"empty body", "", nil},
		{"array without outputs", `[{"other":"x"}]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			items, err := client.FetchNews(context.Background(), "BBCA")
			if err != nil {
				t.Fatalf("FetchNews failed: %v", err)
			}
			if !reflect.DeepEqual(items, tt.want) {
				t.Errorf("items = %v, want %v", items, tt.want)
			}
		})
	}
}
