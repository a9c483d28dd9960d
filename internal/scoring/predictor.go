package scoring

import (
	"context"
	"log/slog"
	"math"

	"CryptoDigest/internal/domain"
	"CryptoDigest/internal/ports"
)

// FallbackVirality is substituted whenever a prediction fails. It sits
// mid-scale on the predictor's 0-100 output so a failed prediction
// neither buries nor promotes an item.
const FallbackVirality = 50.0

// SafePredict calls the predictor and shields the pipeline from its
// failures: any error or non-finite result is replaced by
// FallbackVirality and logged as a warning, so a single bad prediction
// never aborts scoring of other items. A nil predictor yields the
// fallback for every item.
func SafePredict(ctx context.Context, p ports.ViralityPredictor, item domain.ContentItem, logger *slog.Logger) float64 {
	if p == nil {
		return FallbackVirality
	}

	score, err := p.Predict(ctx, item)
	if err != nil {
		warn(logger, "virality prediction failed, using fallback", "item", item.ID, "error", err)
		return FallbackVirality
	}

	if math.IsNaN(score) || math.IsInf(score, 0) {
		warn(logger, "virality prediction not finite, using fallback", "item", item.ID)
		return FallbackVirality
	}

	return score
}

func warn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
