package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"CryptoDigest/internal/domain"
)

func TestPredict(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload["id"] != "tw-1" {
			t.Errorf("unexpected id: %v", payload["id"])
		}

		_ = json.NewEncoder(w).Encode(map[string]float64{"score": 87.5})
	}))
	defer server.Close()

	p := NewPredictor(server.URL, "key")
	p.http = server.Client()

	item := domain.ContentItem{ID: "tw-1", Source: domain.SourceTwitter, Title: "hot take"}
	score, err := p.Predict(context.Background(), item)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if score != 87.5 {
		t.Fatalf("expected 87.5, got %f", score)
	}
}

func TestPredictErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	p := NewPredictor(server.URL, "")
	p.http = server.Client()

	if _, err := p.Predict(context.Background(), domain.ContentItem{ID: "x"}); err == nil {
		t.Fatalf("expected error on bad status")
	}
}

func TestPredictUnconfigured(t *testing.T) {
	t.Parallel()

	p := NewPredictor("", "")
	if _, err := p.Predict(context.Background(), domain.ContentItem{ID: "x"}); err == nil {
		t.Fatalf("expected error for missing endpoint")
	}
}
