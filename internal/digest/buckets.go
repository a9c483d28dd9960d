package digest

import (
	"strings"

	"CryptoDigest/internal/domain"
)

// Narrative bucket names, in fixed priority order. Routing matches an
// item's category tag against each bucket's keyword set; the first
// match wins, and anything unmatched lands in Top/Viral Stories.
const (
	BucketSolanaSpotlight = "Solana Spotlight"
	BucketTopStories      = "Top/Viral Stories"
	BucketNewLaunches     = "New Launches"
	BucketWhaleMoves      = "Whale Moves"
	BucketAlphaInsights   = "Alpha/Insights"
	BucketCommunityVibes  = "Community Vibes"
)

type bucketDef struct {
	name     string
	keywords []string
}

var bucketDefs = []bucketDef{
	{BucketSolanaSpotlight, []string{"solana"}},
	{BucketTopStories, []string{"bitcoin", "ethereum", "news", "rug", "general"}},
	{BucketNewLaunches, []string{"launch", "airdrop"}},
	{BucketWhaleMoves, []string{"whale"}},
	{BucketAlphaInsights, []string{"alpha", "trading"}},
	{BucketCommunityVibes, []string{"meme", "nft", "pump", "dump"}},
}

// Bucket is one narrative group of selected items, order preserved from
// the selector.
type Bucket struct {
	Name  string
	Items []domain.ContentItem
}

// route assigns every selected item to exactly one bucket and returns
// the non-empty buckets in fixed display order. The union of all bucket
// items equals the input with no omissions or duplicates.
func route(items []domain.ContentItem) []Bucket {
	grouped := make(map[string][]domain.ContentItem, len(bucketDefs))
	for _, item := range items {
		name := bucketFor(item.Category)
		grouped[name] = append(grouped[name], item)
	}

	buckets := make([]Bucket, 0, len(bucketDefs))
	for _, def := range bucketDefs {
		if members := grouped[def.name]; len(members) > 0 {
			buckets = append(buckets, Bucket{Name: def.name, Items: members})
		}
	}
	return buckets
}

func bucketFor(category string) string {
	lower := strings.ToLower(category)
	for _, def := range bucketDefs {
		for _, kw := range def.keywords {
			if strings.Contains(lower, kw) {
				return def.name
			}
		}
	}
	return BucketTopStories
}
