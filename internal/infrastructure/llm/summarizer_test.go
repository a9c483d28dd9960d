package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"CryptoDigest/internal/config"
	"CryptoDigest/internal/domain"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("unexpected auth header: %s", got)
		}

		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if len(payload.Messages) != 2 {
			t.Errorf("expected system+user messages, got %d", len(payload.Messages))
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  Solana dominated today.  "}},
			},
		})
	}))
	defer server.Close()

	s := NewSummarizer(config.SummarizerConfig{
		Endpoint: server.URL,
		Model:    "gpt-4o-mini",
		APIKey:   "key",
	})
	s.httpClient = server.Client()

	items := []domain.ContentItem{{Title: "Solana rallies", Category: "Solana General"}}
	summary, err := s.Summarize(context.Background(), items)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary != "Solana dominated today." {
		t.Fatalf("unexpected summary: %q", summary)
	}
}

func TestSummarizeMisconfigured(t *testing.T) {
	t.Parallel()

	s := NewSummarizer(config.SummarizerConfig{})
	if _, err := s.Summarize(context.Background(), nil); err == nil {
		t.Fatalf("expected error for missing configuration")
	}
}

func TestSummarizeErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := NewSummarizer(config.SummarizerConfig{Endpoint: server.URL, Model: "m", APIKey: "k"})
	s.httpClient = server.Client()

	if _, err := s.Summarize(context.Background(), nil); err == nil {
		t.Fatalf("expected error on bad status")
	}
}
