package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"CryptoDigest/internal/domain"
	"CryptoDigest/internal/ports"
)

// Predictor talks to an external ML service that estimates future
// engagement for a content item on a 0-100 scale.
type Predictor struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.ViralityPredictor = (*Predictor)(nil)

// NewPredictor creates a reusable HTTP client.
func NewPredictor(endpoint, apiKey string) *Predictor {
	return &Predictor{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Predict posts the item's text and metrics for scoring.
func (p *Predictor) Predict(ctx context.Context, item domain.ContentItem) (float64, error) {
	if p.endpoint == "" {
		return 0, fmt.Errorf("predictor endpoint not configured")
	}

	payload := map[string]any{
		"id":      item.ID,
		"source":  item.Source,
		"title":   item.Title,
		"body":    item.Body,
		"likes":   item.Metrics.Likes,
		"shares":  item.Metrics.Shares,
		"replies": item.Metrics.Replies,
		"views":   item.Metrics.Views,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var decoded struct {
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	return decoded.Score, nil
}
