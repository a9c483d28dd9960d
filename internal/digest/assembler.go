package digest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"CryptoDigest/internal/curation"
	"CryptoDigest/internal/domain"
	"CryptoDigest/internal/ports"
)

// Composite-score blend and qualitative label thresholds. The label
// reflects both observed engagement and predicted traction.
const (
	engagementBlend = 0.6
	viralityBlend   = 0.4
	viralThreshold  = 80.0
	hotThreshold    = 60.0

	excerptLimit = 220
)

const fallbackSummary = "Today's digest rounds up the most engaging stories across the tracked feeds. " +
	"Summary generation was unavailable for this run; see the sections below for the full picture."

// Assembler buckets the curated selection into narrative sections and
// produces the final digest document.
type Assembler struct {
	summarizer ports.Summarizer
	highlights int
	logger     *slog.Logger
}

// NewAssembler wires the optional narrative summarizer. highlights
// bounds the topic-diverse list feeding the aggregate sections.
func NewAssembler(summarizer ports.Summarizer, highlights int, logger *slog.Logger) *Assembler {
	if highlights <= 0 {
		highlights = 5
	}
	return &Assembler{summarizer: summarizer, highlights: highlights, logger: logger}
}

// Build creates the digest document for one run: header, aggregate
// narrative sections computed from the topic-diverse highlight list,
// one story section per non-empty bucket, insights, and footer.
func (a *Assembler) Build(ctx context.Context, result curation.Result, runID string, date time.Time) domain.DigestDocument {
	highlights := result.Highlights(a.highlights)

	doc := domain.DigestDocument{
		Date:  date,
		RunID: runID,
	}

	doc.Sections = append(doc.Sections, domain.Section{
		Kind:    domain.SectionHeader,
		Heading: fmt.Sprintf("Crypto Digest — %s", date.Format("January 2, 2006")),
	})

	doc.Sections = append(doc.Sections, domain.Section{
		Kind:    domain.SectionSummary,
		Heading: "Executive Summary",
		Body:    a.summarize(ctx, highlights),
	})

	doc.Sections = append(doc.Sections, domain.Section{
		Kind:    domain.SectionTakeaways,
		Heading: "Key Takeaways",
		Bullets: takeaways(highlights),
	})

	doc.Sections = append(doc.Sections, domain.Section{
		Kind:    domain.SectionMarket,
		Heading: "Market Overview",
		Body:    marketOverview(highlights),
	})

	for _, bucket := range route(result.Items) {
		section := domain.Section{
			Kind:    domain.SectionStories,
			Heading: bucket.Name,
		}
		for i, item := range bucket.Items {
			section.Entries = append(section.Entries, domain.StoryEntry{
				Ordinal:    i + 1,
				Title:      entryTitle(item),
				Excerpt:    Excerpt(item.Body),
				Engagement: engagementLine(item),
			})
		}
		doc.Sections = append(doc.Sections, section)
	}

	doc.Sections = append(doc.Sections, domain.Section{
		Kind:    domain.SectionInsights,
		Heading: "Content-Creation Insights",
		Bullets: insights(highlights),
	})

	doc.Sections = append(doc.Sections, domain.Section{
		Kind: domain.SectionFooter,
		Body: fmt.Sprintf("Generated by CryptoDigest • run %s", runID),
	})

	return doc
}

func (a *Assembler) summarize(ctx context.Context, highlights []domain.ContentItem) string {
	if a.summarizer == nil {
		return fallbackSummary
	}

	summary, err := a.summarizer.Summarize(ctx, highlights)
	if err != nil || strings.TrimSpace(summary) == "" {
		if a.logger != nil {
			a.logger.Warn("summary generation failed, using fallback", "error", err)
		}
		return fallbackSummary
	}
	return strings.TrimSpace(summary)
}

// takeaways emits one bullet per highlighted tag: the tag, its count
// across the highlight list, and the highest-engagement item carrying it.
func takeaways(highlights []domain.ContentItem) []string {
	counts := map[string]int{}
	top := map[string]domain.ContentItem{}
	var order []string

	for _, item := range highlights {
		if _, ok := counts[item.Category]; !ok {
			order = append(order, item.Category)
		}
		counts[item.Category]++
		if best, ok := top[item.Category]; !ok || item.EngagementScore > best.EngagementScore {
			top[item.Category] = item
		}
	}

	bullets := make([]string, 0, len(order))
	for _, tag := range order {
		bullets = append(bullets, fmt.Sprintf("%s: %s", tag, entryTitle(top[tag])))
	}
	return bullets
}

func marketOverview(highlights []domain.ContentItem) string {
	overall := tallySentiment(highlights, false)
	solana := tallySentiment(highlights, true)

	var b strings.Builder
	fmt.Fprintf(&b, "Overall sentiment: %s (%d bullish vs %d bearish signals).",
		overall.label(), overall.bullish, overall.bearish)
	fmt.Fprintf(&b, " Solana ecosystem sentiment: %s.", solana.label())
	return b.String()
}

// insights suggests angles for content creators from the highlight mix:
// the dominant topics by story count, strongest first.
func insights(highlights []domain.ContentItem) []string {
	counts := map[string]int{}
	for _, item := range highlights {
		counts[item.Category]++
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})

	bullets := make([]string, 0, len(tags)+1)
	for _, tag := range tags {
		bullets = append(bullets, fmt.Sprintf("%s is drawing attention (%d highlighted stories) — a timely angle for threads or videos.", tag, counts[tag]))
	}
	if len(bullets) == 0 {
		bullets = append(bullets, "No standout topics today; consider an evergreen explainer.")
	}
	return bullets
}

func entryTitle(item domain.ContentItem) string {
	if item.Title != "" {
		return item.Title
	}
	return Excerpt(item.Body)
}

// engagementLine composes the annotation from only the metrics actually
// present on the item, followed by the qualitative label.
func engagementLine(item domain.ContentItem) string {
	var parts []string
	m := item.Metrics
	if m.Likes > 0 {
		parts = append(parts, fmt.Sprintf("%.0f likes", m.Likes))
	}
	if m.Shares > 0 {
		parts = append(parts, fmt.Sprintf("%.0f shares", m.Shares))
	}
	if m.Replies > 0 {
		parts = append(parts, fmt.Sprintf("%.0f replies", m.Replies))
	}
	if m.Views > 0 {
		parts = append(parts, fmt.Sprintf("%.0f views", m.Views))
	}
	metrics := strings.Join(parts, ", ")
	if metrics == "" {
		metrics = "no metrics"
	}

	return fmt.Sprintf("Engagement: %s | %s", metrics, scoreLabel(item))
}

func scoreLabel(item domain.ContentItem) string {
	composite := engagementBlend*item.EngagementScore + viralityBlend*item.PredictedVirality
	switch {
	case composite >= viralThreshold:
		return "viral"
	case composite >= hotThreshold:
		return "hot"
	default:
		return fmt.Sprintf("%.1f", composite)
	}
}

// Excerpt normalizes body text into a single-line snippet bounded at a
// word boundary, or at a rune boundary when the text has no spaces.
func Excerpt(body string) string {
	clean := strings.Join(strings.Fields(body), " ")
	if len(clean) <= excerptLimit {
		return clean
	}

	cut := clean[:excerptLimit]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	} else {
		cut = trimPartialRune(cut)
	}
	return cut + "…"
}

// trimPartialRune drops trailing bytes left over from a rune split by a
// byte-index cut, so the snippet stays valid UTF-8.
func trimPartialRune(s string) string {
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		if r != utf8.RuneError || size > 1 {
			break
		}
		s = s[:len(s)-1]
	}
	return s
}
