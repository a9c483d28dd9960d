package ingest

import (
	"testing"

	"CryptoDigest/internal/domain"
)

func TestDecodeBasicRecord(t *testing.T) {
	t.Parallel()

	records := []map[string]any{
		{
			"id":    "tw-1",
			"title": "Solana hits new highs",
			"body":  "Big day for the ecosystem.",
			"likes": float64(42), "retweets": float64(7), "replies": float64(3), "views": float64(9000),
		},
	}

	items, skipped := Decode(domain.SourceTwitter, records, nil)
	if skipped != 0 {
		t.Fatalf("expected no skips, got %d", skipped)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.ID != "tw-1" || item.Source != domain.SourceTwitter {
		t.Fatalf("unexpected identity: %+v", item)
	}
	if item.Metrics.Shares != 7 {
		t.Fatalf("retweets must map to shares, got %f", item.Metrics.Shares)
	}
	if item.Metrics.Views != 9000 {
		t.Fatalf("unexpected views: %f", item.Metrics.Views)
	}
}

func TestDecodeSkipsRecordsWithoutID(t *testing.T) {
	t.Parallel()

	records := []map[string]any{
		{"title": "no id"},
		{"id": "  "},
		{"id": "ok", "title": "fine"},
	}

	items, skipped := Decode(domain.SourceReddit, records, nil)
	if skipped != 2 {
		t.Fatalf("expected 2 skipped records, got %d", skipped)
	}
	if len(items) != 1 || items[0].ID != "ok" {
		t.Fatalf("expected only the valid record, got %+v", items)
	}
}

func TestDecodeMalformedMetrics(t *testing.T) {
	t.Parallel()

	records := []map[string]any{
		{
			"id":      "r-1",
			"likes":   "not-a-number",
			"shares":  float64(-5),
			"replies": map[string]any{"nested": true},
			"views":   "1500",
		},
	}

	items, _ := Decode(domain.SourceReddit, records, nil)
	m := items[0].Metrics

	if m.Likes != 0 || m.Shares != 0 || m.Replies != 0 {
		t.Fatalf("malformed metrics must be 0, got %+v", m)
	}
	if m.Views != 1500 {
		t.Fatalf("numeric string should parse, got %f", m.Views)
	}
}

func TestDecodeNumericID(t *testing.T) {
	t.Parallel()

	records := []map[string]any{{"id": float64(12345)}}

	items, skipped := Decode(domain.SourceNews, records, nil)
	if skipped != 0 || len(items) != 1 {
		t.Fatalf("numeric id should decode, got items=%d skipped=%d", len(items), skipped)
	}
	if items[0].ID != "12345" {
		t.Fatalf("unexpected id: %s", items[0].ID)
	}
}

func TestNormalizeTextStripsHTML(t *testing.T) {
	t.Parallel()

	got := normalizeText("<p>Solana <b>summer</b> is\n back</p>")
	if got != "Solana summer is back" {
		t.Fatalf("unexpected normalized text: %q", got)
	}
}

func TestNormalizeTextCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	got := normalizeText("  too   many\n\nspaces ")
	if got != "too many spaces" {
		t.Fatalf("unexpected normalized text: %q", got)
	}
}
