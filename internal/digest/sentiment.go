package digest

import (
	"strings"

	"CryptoDigest/internal/domain"
)

// Overall sentiment labels derived from the bullish/bearish tally.
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentMixed   = "mixed"
)

var bullishTerms = []string{
	"bullish", "moon", "pump", "rally", "surge", "breakout",
	"ath", "all-time high", "gains", "accumulate", "buy",
}

var bearishTerms = []string{
	"bearish", "dump", "crash", "plummet", "sell-off", "selloff",
	"capitulation", "rug", "scam", "fear", "liquidation",
}

type sentimentTally struct {
	bullish int
	bearish int
}

func (t sentimentTally) label() string {
	switch {
	case t.bullish > t.bearish:
		return SentimentBullish
	case t.bearish > t.bullish:
		return SentimentBearish
	default:
		return SentimentMixed
	}
}

// tallySentiment counts bullish and bearish keyword occurrences across
// the items' text. The solanaOnly variant restricts the tally to
// Solana-priority items for the ecosystem-specific sentiment line.
func tallySentiment(items []domain.ContentItem, solanaOnly bool) sentimentTally {
	var tally sentimentTally
	for _, item := range items {
		if solanaOnly && !item.SolanaPriority {
			continue
		}
		lower := strings.ToLower(item.Text())
		for _, term := range bullishTerms {
			tally.bullish += strings.Count(lower, term)
		}
		for _, term := range bearishTerms {
			tally.bearish += strings.Count(lower, term)
		}
	}
	return tally
}
