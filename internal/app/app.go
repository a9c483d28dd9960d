package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"CryptoDigest/internal/config"
	"CryptoDigest/internal/curation"
	"CryptoDigest/internal/domain"
	"CryptoDigest/internal/infrastructure/feedfile"
	"CryptoDigest/internal/infrastructure/llm"
	"CryptoDigest/internal/infrastructure/ml"
	"CryptoDigest/internal/infrastructure/storage"
	"CryptoDigest/internal/infrastructure/telegram"
	"CryptoDigest/internal/logging"
	"CryptoDigest/internal/ports"
	"CryptoDigest/internal/usecase"
)

// Application wires configs to the pipeline and owns adapter lifecycles.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	closers  []func() error
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	app := &Application{cfg: cfg}

	source := feedfile.NewSource(
		feedfile.NewRegistry(),
		cfg.Feeds,
		baseLogger.With("component", "source"),
	)

	store, err := app.buildStore(cfg.Dedup, baseLogger)
	if err != nil {
		return nil, err
	}

	var predictor ports.ViralityPredictor
	if cfg.Predictor.Endpoint != "" {
		predictor = ml.NewPredictor(cfg.Predictor.Endpoint, cfg.Predictor.APIKey)
	}

	var summarizer ports.Summarizer
	if cfg.Summarizer.APIKey != "" {
		summarizer = llm.NewSummarizer(cfg.Summarizer)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	app.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Store:      store,
		Predictor:  predictor,
		Summarizer: summarizer,
		Notifier:   notifier,
		Selection: curation.Options{
			Cap:          cfg.Curation.Cap,
			SolanaQuota:  cfg.Curation.SolanaQuota,
			GeneralQuota: cfg.Curation.GeneralQuota,
		},
		Highlights: cfg.Curation.Highlights,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	return app, nil
}

// Run executes a single curation run and returns the digest document,
// or nil when the run short-circuited on empty input.
func (a *Application) Run(ctx context.Context) (*domain.DigestDocument, error) {
	if a.pipeline == nil {
		return nil, nil
	}
	return a.pipeline.Run(ctx, time.Now().UTC())
}

// Close releases adapter resources (database handles).
func (a *Application) Close() error {
	var firstErr error
	for _, closer := range a.closers {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenStore builds a dedup store from configuration, shared with the
// CLI's inspection commands.
func OpenStore(cfg config.DedupConfig, logger *slog.Logger) (ports.DedupStore, func() error, error) {
	switch cfg.Driver {
	case "", "file":
		return storage.NewFileStore(cfg.Path, logger), func() error { return nil }, nil
	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite dedup store: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown dedup driver %q", cfg.Driver)
	}
}

func (a *Application) buildStore(cfg config.DedupConfig, logger *slog.Logger) (ports.DedupStore, error) {
	store, closer, err := OpenStore(cfg, logger.With("component", "dedup"))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closer)
	return store, nil
}
