package domain

import "time"

// SectionKind enumerates the fixed section types of a digest document.
type SectionKind string

const (
	SectionHeader    SectionKind = "header"
	SectionSummary   SectionKind = "executive_summary"
	SectionTakeaways SectionKind = "key_takeaways"
	SectionMarket    SectionKind = "market_overview"
	SectionStories   SectionKind = "category_stories"
	SectionInsights  SectionKind = "content_insights"
	SectionFooter    SectionKind = "footer"
)

// StoryEntry is one rendered item inside a category story section.
type StoryEntry struct {
	Ordinal    int
	Title      string
	Excerpt    string
	Engagement string
}

// Section is one typed block of the digest document. Narrative sections
// carry Body and/or Bullets; story sections carry Entries.
type Section struct {
	Kind    SectionKind
	Heading string
	Body    string
	Bullets []string
	Entries []StoryEntry
}

// DigestDocument is the write-once output of a single run: an ordered
// sequence of sections produced from the curated selection.
type DigestDocument struct {
	Date     time.Time
	RunID    string
	Sections []Section
}
