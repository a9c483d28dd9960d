package domain

// Source identifies the feed a content item was gathered from.
type Source string

const (
	SourceTwitter  Source = "twitter"
	SourceReddit   Source = "reddit"
	SourceTelegram Source = "telegram"
	SourceDiscord  Source = "discord"
	SourceNews     Source = "news"
)

// Metrics holds raw interaction counts for a single item. Missing
// metrics are zero; ingest floors malformed or negative values to zero.
type Metrics struct {
	Likes   float64
	Shares  float64
	Replies float64
	Views   float64
}

// ContentItem is the core entity flowing through the curation pipeline.
// ID is unique within its source. The derived fields are filled in by
// the scorer, predictor, and classifier before selection.
type ContentItem struct {
	ID     string
	Source Source
	Title  string
	Body   string

	Metrics Metrics

	EngagementScore   float64
	PredictedVirality float64
	Category          string
	SolanaScore       float64
	SolanaPriority    bool
}

// Text concatenates the item's available text fields, title first,
// skipping absent fields. This is the classifier's input.
func (c ContentItem) Text() string {
	switch {
	case c.Title != "" && c.Body != "":
		return c.Title + "\n" + c.Body
	case c.Title != "":
		return c.Title
	default:
		return c.Body
	}
}
