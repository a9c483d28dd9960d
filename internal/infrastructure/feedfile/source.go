package feedfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"CryptoDigest/internal/config"
	"CryptoDigest/internal/domain"
	"CryptoDigest/internal/ingest"
	"CryptoDigest/internal/ports"
)

// Decoder turns one feed file's raw bytes into field-map records.
type Decoder interface {
	Name() string
	Decode(raw []byte) ([]map[string]any, error)
}

// Registry keeps a mapping from format names to their decoders.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry builds a registry preloaded with the built-in decoders.
func NewRegistry() *Registry {
	r := &Registry{decoders: map[string]Decoder{}}
	r.Register(jsonDecoder{})
	r.Register(jsonLinesDecoder{})
	return r
}

// Register adds or replaces a decoder implementation.
func (r *Registry) Register(d Decoder) {
	r.decoders[d.Name()] = d
}

// Resolve returns a decoder by format name, defaulting to json.
func (r *Registry) Resolve(format string) (Decoder, error) {
	if format == "" {
		format = "json"
	}
	if d, ok := r.decoders[format]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("feed format %s is not registered", format)
}

type jsonDecoder struct{}

func (jsonDecoder) Name() string { return "json" }

func (jsonDecoder) Decode(raw []byte) ([]map[string]any, error) {
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse json feed: %w", err)
	}
	return records, nil
}

type jsonLinesDecoder struct{}

func (jsonLinesDecoder) Name() string { return "jsonl" }

func (jsonLinesDecoder) Decode(raw []byte) ([]map[string]any, error) {
	var records []map[string]any
	for i, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("parse jsonl feed line %d: %w", i+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Source reads per-source feed drops from a directory: one file per
// configured feed, each holding raw item records. Per-feed failures are
// isolated: a missing or unparsable file is logged and skipped so the
// remaining feeds still contribute.
type Source struct {
	registry *Registry
	dir      string
	feeds    []config.FeedConfig
	logger   *slog.Logger
}

var _ ports.ItemSource = (*Source)(nil)

// NewSource wires the decoder registry with config-defined feeds.
func NewSource(registry *Registry, cfg config.FeedsConfig, logger *slog.Logger) *Source {
	return &Source{
		registry: registry,
		dir:      cfg.Dir,
		feeds:    cfg.Sources,
		logger:   logger,
	}
}

// Fetch aggregates every configured feed into one tagged item list.
func (s *Source) Fetch(ctx context.Context) ([]domain.ContentItem, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("feed decoder registry is not configured")
	}

	var aggregated []domain.ContentItem
	for _, feed := range s.feeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, err := s.fetchFeed(feed)
		if err != nil {
			s.warn("feed skipped", "feed", feed.Name, "error", err)
			continue
		}

		s.debug("feed produced items", "feed", feed.Name, "count", len(items))
		aggregated = append(aggregated, items...)
	}

	s.debug("feed source done", "total_items", len(aggregated))
	return aggregated, nil
}

func (s *Source) fetchFeed(feed config.FeedConfig) ([]domain.ContentItem, error) {
	decoder, err := s.registry.Resolve(feed.Format)
	if err != nil {
		return nil, err
	}

	ext := feed.Format
	if ext == "" {
		ext = "json"
	}
	path := filepath.Join(s.dir, feed.Name+"."+ext)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", path, err)
	}

	records, err := decoder.Decode(raw)
	if err != nil {
		return nil, err
	}

	items, skipped := ingest.Decode(domain.Source(feed.Source), records, s.logger)
	if skipped > 0 {
		s.warn("malformed records skipped", "feed", feed.Name, "skipped", skipped)
	}
	return items, nil
}

func (s *Source) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Source) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
