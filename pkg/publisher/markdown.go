package publisher

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ccomgroup/content-analyzer/models"
)

// maxChaptersInNote caps the chapter list in the published document.
const maxChaptersInNote = 3

// FormatMarkdown renders a record as the markdown body of a weblink note:
// title header, info block, summary, top chapters, tag line, and an
// analysis-timestamp footer.
func FormatMarkdown(record *models.Record) string {
	var sb strings.Builder

	switch record.Ref.Kind {
	case models.KindVideo:
		sb.WriteString("# YouTube Video Analysis\n\n")
		sb.WriteString("## Video Information\n")
		fmt.Fprintf(&sb, "- **Title:** %s\n", record.Meta.Title)
		fmt.Fprintf(&sb, "- **Channel:** %s\n", record.Meta.Author)
		fmt.Fprintf(&sb, "- **Views:** %d\n", record.Meta.Views)
		fmt.Fprintf(&sb, "- **Duration:** %s\n", models.FormatTimestamp(record.Meta.Duration))
		fmt.Fprintf(&sb, "- **Publish Date:** %s\n", record.Meta.PublishDate)
		fmt.Fprintf(&sb, "- **Video URL:** %s\n", record.Ref.URL)
	case models.KindRepository:
		fmt.Fprintf(&sb, "# Repository: %s\n\n", record.Meta.Title)
		sb.WriteString("## Repository Information\n")
		fmt.Fprintf(&sb, "- **Owner:** %s\n", record.Meta.Author)
		fmt.Fprintf(&sb, "- **Repository URL:** %s\n", record.Ref.URL)
		if len(record.FileTree) > 0 {
			fmt.Fprintf(&sb, "- **Files:** %d\n", len(record.FileTree))
		}
	}

	sb.WriteString("\n## Summary\n")
	if record.Artifacts.Summary != "" {
		sb.WriteString(record.Artifacts.Summary)
	} else {
		sb.WriteString("No summary available")
	}
	sb.WriteString("\n")

	if len(record.Artifacts.Chapters) > 0 {
		sb.WriteString("\n## Main Chapters\n")
		for i, ch := range record.Artifacts.Chapters {
			if i == maxChaptersInNote {
				break
			}
			fmt.Fprintf(&sb, "\n- %s: %s", ch.Timestamp, ch.Title)
		}
		sb.WriteString("\n")
	}

	if len(record.Artifacts.Tags) > 0 {
		sb.WriteString("\n## Tags\n")
		hashed := make([]string, len(record.Artifacts.Tags))
		for i, tag := range record.Artifacts.Tags {
			hashed[i] = "#" + tag
		}
		sb.WriteString(strings.Join(hashed, ", "))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\n---\nAnalyzed on: %s\n", record.ProcessedAt.Format("2006-01-02T15:04:05Z07:00"))
	return sb.String()
}

// Description derives the note description from the summary, bounded so it
// fits the service's preview field.
func Description(record *models.Record) string {
	summary := strings.TrimSpace(record.Artifacts.Summary)
	if len(summary) <= 500 {
		return summary
	}
	cut := summary[:500]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
