package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"CryptoDigest/internal/config"
	"CryptoDigest/internal/domain"
	"CryptoDigest/internal/ports"
)

// Summarizer implements ports.Summarizer backed by OpenAI-compatible
// chat-completion APIs.
type Summarizer struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	httpClient   *http.Client
}

var _ ports.Summarizer = (*Summarizer)(nil)

// NewSummarizer builds a client from configuration.
func NewSummarizer(cfg config.SummarizerConfig) *Summarizer {
	return &Summarizer{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Summarize posts the top items as a user message and returns the
// completion text for the executive summary.
func (s *Summarizer) Summarize(ctx context.Context, items []domain.ContentItem) (string, error) {
	if s == nil {
		return "", fmt.Errorf("summarizer is nil")
	}
	if s.apiKey == "" || s.endpoint == "" || s.model == "" {
		return "", fmt.Errorf("summarizer misconfigured")
	}

	payload, err := buildItemsJSON(items)
	if err != nil {
		return "", fmt.Errorf("marshal items: %w", err)
	}

	body, err := json.Marshal(map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": safePrompt(s.systemPrompt)},
			{"role": "user", "content": string(payload)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal summarizer payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("summarizer error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode summary: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("summarizer returned no choices")
	}

	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}

func buildItemsJSON(items []domain.ContentItem) ([]byte, error) {
	type entry struct {
		Title    string  `json:"title"`
		Body     string  `json:"body,omitempty"`
		Source   string  `json:"source"`
		Category string  `json:"category"`
		Score    float64 `json:"engagement_score"`
	}

	payload := make([]entry, 0, len(items))
	for _, item := range items {
		payload = append(payload, entry{
			Title:    item.Title,
			Body:     item.Body,
			Source:   string(item.Source),
			Category: item.Category,
			Score:    item.EngagementScore,
		})
	}

	return json.Marshal(payload)
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "You write short executive summaries of crypto news digests."
	}
	return prompt
}
