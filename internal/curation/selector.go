package curation

import (
	"log/slog"
	"math"
	"sort"

	"CryptoDigest/internal/domain"
)

// Options bounds the selection. Zero values fall back to the defaults.
type Options struct {
	Cap          int
	SolanaQuota  int
	GeneralQuota int
}

const (
	defaultCap          = 15
	defaultSolanaQuota  = 4
	defaultGeneralQuota = 6
)

func (o Options) withDefaults() Options {
	if o.Cap <= 0 {
		o.Cap = defaultCap
	}
	if o.SolanaQuota <= 0 {
		o.SolanaQuota = defaultSolanaQuota
	}
	if o.GeneralQuota <= 0 {
		o.GeneralQuota = defaultGeneralQuota
	}
	return o
}

// Result is the ordered, bounded selection produced once per run. It is
// both the highlight pool for narrative sections and the input to the
// story-section bucketing.
type Result struct {
	Items []domain.ContentItem
}

// Select merges the deduplicated, scored item list into a bounded,
// priority-weighted selection. Two phases: partition by Solana priority
// and sort each partition (engagement desc, predicted virality as
// tie-break, arrival order last), then quota-merge: SolanaQuota from
// the priority partition, GeneralQuota from the rest, topping up
// Solana-first until the cap or exhaustion. Insufficient input returns
// everything available; invalid scores are sanitized to 0 and the item
// kept.
func Select(items []domain.ContentItem, opts Options, logger *slog.Logger) Result {
	opts = opts.withDefaults()

	solana, general := partition(items, logger)

	selected := make([]domain.ContentItem, 0, opts.Cap)
	used := make(map[string]struct{}, opts.Cap)

	// limit < 0 means no per-partition quota, only the overall cap.
	take := func(pool []domain.ContentItem, limit int) {
		for _, item := range pool {
			if limit == 0 || len(selected) >= opts.Cap {
				return
			}
			if _, ok := used[item.ID]; ok {
				continue
			}
			used[item.ID] = struct{}{}
			selected = append(selected, item)
			if limit > 0 {
				limit--
			}
		}
	}

	take(solana, opts.SolanaQuota)
	take(general, opts.GeneralQuota)

	// Top up below the cap: remaining Solana items first, then general.
	take(solana, -1)
	take(general, -1)

	return Result{Items: selected}
}

// Highlights walks the selection in order and collects up to n items
// whose category tag is not yet represented, yielding the
// topic-diverse list consumed by the narrative sections. Bucketed story
// sections consume the full selection instead.
func (r Result) Highlights(n int) []domain.ContentItem {
	if n <= 0 {
		return nil
	}

	usedTags := make(map[string]struct{}, n)
	highlights := make([]domain.ContentItem, 0, n)
	for _, item := range r.Items {
		if _, ok := usedTags[item.Category]; ok {
			continue
		}
		usedTags[item.Category] = struct{}{}
		highlights = append(highlights, item)
		if len(highlights) == n {
			break
		}
	}
	return highlights
}

// IDs returns the selected item ids in selection order.
func (r Result) IDs() []string {
	ids := make([]string, len(r.Items))
	for i, item := range r.Items {
		ids[i] = item.ID
	}
	return ids
}

type ranked struct {
	item    domain.ContentItem
	arrival int
}

func partition(items []domain.ContentItem, logger *slog.Logger) (solana, general []domain.ContentItem) {
	var priority, rest []ranked
	for i, item := range items {
		if bad := sanitizeScores(&item); bad && logger != nil {
			logger.Warn("item carried non-finite score, treated as 0", "item", item.ID)
		}
		r := ranked{item: item, arrival: i}
		if item.SolanaPriority {
			priority = append(priority, r)
		} else {
			rest = append(rest, r)
		}
	}

	return sortRanked(priority), sortRanked(rest)
}

func sortRanked(pool []ranked) []domain.ContentItem {
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.item.EngagementScore != b.item.EngagementScore {
			return a.item.EngagementScore > b.item.EngagementScore
		}
		if a.item.PredictedVirality != b.item.PredictedVirality {
			return a.item.PredictedVirality > b.item.PredictedVirality
		}
		return a.arrival < b.arrival
	})

	out := make([]domain.ContentItem, len(pool))
	for i, r := range pool {
		out[i] = r.item
	}
	return out
}

// sanitizeScores floors non-finite scores to 0 so a bad score never
// drops an item or poisons the sort. Reports whether anything changed.
func sanitizeScores(item *domain.ContentItem) bool {
	changed := false
	if !isFinite(item.EngagementScore) || item.EngagementScore < 0 {
		item.EngagementScore = 0
		changed = true
	}
	if !isFinite(item.PredictedVirality) {
		item.PredictedVirality = 0
		changed = true
	}
	return changed
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
