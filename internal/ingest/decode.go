package ingest

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"CryptoDigest/internal/domain"
)

// Decode converts raw field-map records from one feed into tagged
// content items. Records without a usable id are skipped and counted;
// every other malformation degrades field-by-field (missing text stays
// empty, malformed metrics become 0). Returns the decoded items and the
// number of skipped records.
func Decode(source domain.Source, records []map[string]any, logger *slog.Logger) ([]domain.ContentItem, int) {
	items := make([]domain.ContentItem, 0, len(records))
	skipped := 0

	for i, record := range records {
		id := strings.TrimSpace(stringField(record, "id"))
		if id == "" {
			skipped++
			if logger != nil {
				logger.Warn("skipping record without id", "source", source, "index", i)
			}
			continue
		}

		items = append(items, domain.ContentItem{
			ID:     id,
			Source: source,
			Title:  normalizeText(stringField(record, "title")),
			Body:   normalizeText(stringField(record, "body", "text", "content")),
			Metrics: domain.Metrics{
				Likes:   metricField(record, "likes"),
				Shares:  metricField(record, "shares", "retweets", "reposts"),
				Replies: metricField(record, "replies", "comments"),
				Views:   metricField(record, "views", "impressions"),
			},
		})
	}

	return items, skipped
}

// stringField returns the first present key rendered as a string.
// Numeric ids are accepted and formatted.
func stringField(record map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := record[key]
		if !ok || v == nil {
			continue
		}
		switch value := v.(type) {
		case string:
			return value
		case float64:
			return strconv.FormatFloat(value, 'f', -1, 64)
		case int:
			return strconv.Itoa(value)
		case json.Number:
			return value.String()
		}
	}
	return ""
}

// metricField coerces the first present key to a non-negative float.
// Non-numeric or negative values are treated as 0, never an error.
func metricField(record map[string]any, keys ...string) float64 {
	for _, key := range keys {
		v, ok := record[key]
		if !ok || v == nil {
			continue
		}

		var value float64
		switch n := v.(type) {
		case float64:
			value = n
		case int:
			value = float64(n)
		case int64:
			value = float64(n)
		case json.Number:
			parsed, err := n.Float64()
			if err != nil {
				return 0
			}
			value = parsed
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return 0
			}
			value = parsed
		default:
			return 0
		}

		if value < 0 {
			return 0
		}
		return value
	}
	return 0
}

// normalizeText collapses whitespace and strips markup when the value
// looks like HTML, so classification and excerpting see plain text.
func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "<") && strings.Contains(s, ">") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}

	return strings.Join(strings.Fields(s), " ")
}
