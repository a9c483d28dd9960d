package ports

import (
	"context"

	"CryptoDigest/internal/domain"
)

// ItemSource pulls raw content items from the configured feeds, already
// tagged with their source discriminator.
type ItemSource interface {
	Fetch(ctx context.Context) ([]domain.ContentItem, error)
}

// ViralityPredictor produces a predicted future-engagement score for an
// item. Implementations may fail; callers are expected to substitute a
// fallback value so one bad prediction never aborts the batch.
type ViralityPredictor interface {
	Predict(ctx context.Context, item domain.ContentItem) (float64, error)
}

// Summarizer turns the top highlighted items into a short narrative for
// the executive summary section.
type Summarizer interface {
	Summarize(ctx context.Context, items []domain.ContentItem) (string, error)
}

// DedupStore is the durable set of item ids surfaced by prior runs.
// Load fails open: a missing or corrupt backing store yields an empty
// set with a nil error. Save persists a deterministic snapshot.
type DedupStore interface {
	Load(ctx context.Context) (map[string]struct{}, error)
	Save(ctx context.Context, ids map[string]struct{}) error
}

// Notifier publishes the rendered digest to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}
