package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"CryptoDigest/internal/classify"
	"CryptoDigest/internal/curation"
	"CryptoDigest/internal/digest"
	"CryptoDigest/internal/domain"
	"CryptoDigest/internal/ports"
	"CryptoDigest/internal/scoring"
)

// PipelineDeps wires all driven adapters into the curation pipeline.
type PipelineDeps struct {
	Source     ports.ItemSource
	Store      ports.DedupStore
	Predictor  ports.ViralityPredictor
	Summarizer ports.Summarizer
	Notifier   ports.Notifier
	Selection  curation.Options
	Highlights int
	Logger     *slog.Logger
}

// Pipeline implements the single-pass curation and digest-assembly run.
type Pipeline struct {
	source     ports.ItemSource
	store      ports.DedupStore
	predictor  ports.ViralityPredictor
	notifier   ports.Notifier
	assembler  *digest.Assembler
	selection  curation.Options
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:    deps.Source,
		store:     deps.Store,
		predictor: deps.Predictor,
		notifier:  deps.Notifier,
		assembler: digest.NewAssembler(deps.Summarizer, deps.Highlights, deps.Logger),
		selection: deps.Selection,
		logger:    deps.Logger,
	}
}

// Run executes one bounded batch: merge the tagged feeds, enrich every
// item with scores and a category, drop previously-seen ids, select the
// bounded diverse subset, assemble and render the digest, then persist
// the union of seen and newly surfaced ids. Zero items after merge or
// dedup short-circuits into a nil document with the store untouched.
func (p *Pipeline) Run(ctx context.Context, now time.Time) (*domain.DigestDocument, error) {
	if p.source == nil {
		return nil, fmt.Errorf("item source is not configured")
	}

	runID := uuid.NewString()
	logger := p.log().With("run", runID)

	items, err := p.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	logger.Info("items fetched", "count", len(items))

	if len(items) == 0 {
		logger.Info("no input items, skipping run")
		return nil, nil
	}

	seen, err := p.loadSeen(ctx, logger)
	if err != nil {
		return nil, err
	}

	fresh := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		item.ID = strings.TrimSpace(item.ID)
		if _, dup := seen[item.ID]; dup {
			continue
		}

		item.EngagementScore = scoring.Score(item.Metrics)
		res := classify.Classify(item.Text())
		item.Category = res.Category
		item.SolanaScore = res.SolanaScore
		item.SolanaPriority = res.SolanaPriority
		item.PredictedVirality = scoring.SafePredict(ctx, p.predictor, item, logger)

		fresh = append(fresh, item)
	}

	if len(fresh) == 0 {
		logger.Info("all items previously seen, skipping run")
		return nil, nil
	}

	selection := curation.Select(fresh, p.selection, logger)
	logger.Info("selection complete", "selected", len(selection.Items), "candidates", len(fresh))

	doc := p.assembler.Build(ctx, selection, runID, now)

	p.saveSeen(ctx, logger, seen, selection.IDs())

	if p.notifier != nil {
		if err := p.notifier.PublishDigest(ctx, digest.Render(doc)); err != nil {
			logger.Warn("digest publish failed", "error", err)
		}
	}

	return &doc, nil
}

func (p *Pipeline) loadSeen(ctx context.Context, logger *slog.Logger) (map[string]struct{}, error) {
	if p.store == nil {
		return map[string]struct{}{}, nil
	}

	seen, err := p.store.Load(ctx)
	if err != nil {
		// The store contract fails open; a returned error means the
		// adapter could not even do that.
		return nil, fmt.Errorf("load dedup store: %w", err)
	}
	logger.Debug("dedup store loaded", "seen", len(seen))
	return seen, nil
}

// saveSeen persists loaded ∪ surfaced. A save failure is logged, not
// fatal: the digest already rendered, and the worst outcome is a repeat
// item next run.
func (p *Pipeline) saveSeen(ctx context.Context, logger *slog.Logger, seen map[string]struct{}, surfaced []string) {
	if p.store == nil {
		return
	}

	for _, id := range surfaced {
		seen[id] = struct{}{}
	}

	if err := p.store.Save(ctx, seen); err != nil {
		logger.Warn("dedup store save failed", "error", err)
		return
	}
	logger.Debug("dedup store saved", "total", len(seen))
}

func (p *Pipeline) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return slog.Default()
}
