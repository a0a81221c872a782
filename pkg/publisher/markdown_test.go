package publisher

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ccomgroup/content-analyzer/models"
)

func videoRecord() *models.Record {
	return &models.Record{
		ID: "rec-1",
		Ref: models.ContentRef{
			URL:     "https://www.youtube.com/watch?v=abcdefghijk",
			Kind:    models.KindVideo,
			VideoID: "abcdefghijk",
		},
		Meta: models.Metadata{
			Title:       "A Talk",
			Author:      "A Channel",
			Views:       12345,
			Duration:    3723,
			PublishDate: "2024-01-02T00:00:00Z",
		},
		Artifacts: models.Artifacts{
			Summary: "What the talk covers.",
			Tags:    []string{"go", "concurrency"},
			Chapters: []models.Chapter{
				{Timestamp: "00:00:00", Title: "Intro", Summary: "s1"},
				{Timestamp: "00:10:00", Title: "Middle", Summary: "s2"},
				{Timestamp: "00:20:00", Title: "Deep dive", Summary: "s3"},
				{Timestamp: "00:30:00", Title: "Questions", Summary: "s4"},
			},
		},
		ProcessedAt: time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC),
	}
}

func TestFormatMarkdown_Video(t *testing.T) {
	md := FormatMarkdown(videoRecord())

	for _, want := range []string{
		"# YouTube Video Analysis",
		"- **Title:** A Talk",
		"- **Channel:** A Channel",
		"- **Views:** 12345",
		"- **Duration:** 01:02:03",
		"## Summary",
		"What the talk covers.",
		"## Main Chapters",
		"- 00:00:00: Intro",
		"## Tags",
		"#go, #concurrency",
		"Analyzed on: 2026-08-26T10:00:00Z",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	// Chapters are capped at three in the note.
	if strings.Contains(md, "Questions") {
		t.Error("fourth chapter leaked into the note")
	}
}

func TestFormatMarkdown_Repository(t *testing.T) {
	record := &models.Record{
		Ref: models.ContentRef{
			URL:   "https://github.com/owner/widget",
			Kind:  models.KindRepository,
			Owner: "owner",
			Repo:  "widget",
		},
		Meta: models.Metadata{Title: "owner/widget", Author: "owner"},
		Artifacts: models.Artifacts{
			Summary: "A widget library.",
			Tags:    []string{"go"},
		},
		FileTree:    []string{"main.go", "go.mod"},
		ProcessedAt: time.Now(),
	}

	md := FormatMarkdown(record)
	for _, want := range []string{
		"# Repository: owner/widget",
		"- **Owner:** owner",
		"- **Repository URL:** https://github.com/owner/widget",
		"- **Files:** 2",
		"A widget library.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "## Main Chapters") {
		t.Error("chapters section present without chapters")
	}
}

func TestFormatMarkdown_NoSummary(t *testing.T) {
	record := videoRecord()
	record.Artifacts.Summary = ""
	md := FormatMarkdown(record)
	if !strings.Contains(md, "No summary available") {
		t.Error("missing fallback for empty summary")
	}
}

func TestDescription(t *testing.T) {
	record := videoRecord()
	if got := Description(record); got != "What the talk covers." {
		t.Errorf("Description() = %q", got)
	}

	record.Artifacts.Summary = strings.Repeat("x", 800)
	if got := Description(record); len(got) != 500 {
		t.Errorf("Description() length = %d, want capped at 500", len(got))
	}
}

func TestDescription_MultibyteBoundary(t *testing.T) {
	record := videoRecord()
	// 3-byte runes; 500 is not a multiple of 3, so a byte slice at 500
	// would split a rune.
	record.Artifacts.Summary = strings.Repeat("✓", 300)

	got := Description(record)
	if len(got) > 500 {
		t.Errorf("Description() length = %d, want at most 500", len(got))
	}
	if !utf8.ValidString(got) {
		t.Error("Description() returned invalid UTF-8")
	}
}
