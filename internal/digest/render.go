package digest

import (
	"fmt"
	"strings"

	"CryptoDigest/internal/domain"
)

const entrySeparator = "---"

// Render flattens the typed document into Markdown. Section order is
// exactly the document's order; story entries are separated by a
// horizontal rule.
func Render(doc domain.DigestDocument) string {
	var b strings.Builder

	for _, section := range doc.Sections {
		switch section.Kind {
		case domain.SectionHeader:
			fmt.Fprintf(&b, "# %s\n\n", section.Heading)
		case domain.SectionStories:
			renderStories(&b, section)
		case domain.SectionFooter:
			fmt.Fprintf(&b, "%s\n", section.Body)
		default:
			renderNarrative(&b, section)
		}
	}

	return b.String()
}

func renderNarrative(b *strings.Builder, section domain.Section) {
	if section.Heading != "" {
		fmt.Fprintf(b, "## %s\n\n", section.Heading)
	}
	if section.Body != "" {
		fmt.Fprintf(b, "%s\n\n", section.Body)
	}
	for _, bullet := range section.Bullets {
		fmt.Fprintf(b, "- %s\n", bullet)
	}
	if len(section.Bullets) > 0 {
		b.WriteString("\n")
	}
}

func renderStories(b *strings.Builder, section domain.Section) {
	fmt.Fprintf(b, "## %s\n\n", section.Heading)

	for i, entry := range section.Entries {
		if i > 0 {
			fmt.Fprintf(b, "%s\n\n", entrySeparator)
		}
		fmt.Fprintf(b, "%d. %s\n", entry.Ordinal, entry.Title)
		if entry.Excerpt != "" {
			fmt.Fprintf(b, "%s\n", entry.Excerpt)
		}
		fmt.Fprintf(b, "%s\n\n", entry.Engagement)
	}
}
