// Package summarize derives summary, tags, and chapters from source text
// by fanning out independent calls to a chat model.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/ccomgroup/content-analyzer/models"
	"github.com/ccomgroup/content-analyzer/pkg/llm"
)

// ChatCompleter is the single model capability the summarizer needs.
// Both the hosted client and the local Ollama client satisfy it.
type ChatCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// PlaceholderSummary stands in for a sub-call that failed. Failures degrade
// the affected section; they never cancel the sibling calls.
const PlaceholderSummary = "Error generating summary"

const (
	chapterBucket = 30 // caption entries per generated chapter

	summaryInputCap = 4000
	tagInputCap     = 2000
	chapterInputCap = 4000
	bucketInputCap  = 1000
)

// Summarizer runs the three-way fan-out over a chat model.
type Summarizer struct {
	model  ChatCompleter
	logger *slog.Logger
}

// New creates a Summarizer. A nil logger discards log output.
func New(model ChatCompleter, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Summarizer{model: model, logger: logger}
}

// Summarize produces the derived artifacts for the given text. Segments,
// when present, drive timestamped chapter generation. Long input is
// chunked at sentence boundaries; per-chunk outputs are merged.
//
// A rate-limit error from the model aborts the whole call with a typed
// error. Any other sub-call failure degrades its section to a placeholder
// and is listed in Artifacts.Degraded.
func (s *Summarizer) Summarize(ctx context.Context, text string, segments []models.Segment) (models.Artifacts, error) {
	chunks := SplitChunks(text)

	var (
		wg             sync.WaitGroup
		mu             sync.Mutex
		chunkSummaries = make([]string, len(chunks))
		chunkTags      = make([][]string, len(chunks))
		chapters       []models.Chapter
		degraded       []string
		fatal          error
	)

	degrade := func(section string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if errors.Is(err, llm.ErrRateLimited) {
			fatal = err
			return
		}
		s.logger.Warn("summarizer sub-call failed", "section", section, "error", err)
		degraded = append(degraded, section)
	}

	for i, chunk := range chunks {
		wg.Add(2)
		go func(i int, chunk string) {
			defer wg.Done()
			summary, err := s.model.Complete(ctx,
				"Generate a concise summary.",
				"Summarize this content in 2-3 paragraphs:\n\n"+truncate(chunk, summaryInputCap))
			if err != nil {
				degrade("summary", err)
				summary = PlaceholderSummary
			}
			chunkSummaries[i] = summary
		}(i, chunk)
		go func(i int, chunk string) {
			defer wg.Done()
			reply, err := s.model.Complete(ctx,
				"Generate 5-8 relevant and concise tags.",
				"Generate tags for:\n\n"+truncate(chunk, tagInputCap))
			if err != nil {
				degrade("tags", err)
				return
			}
			chunkTags[i] = ParseTags(reply)
		}(i, chunk)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		generated, err := s.generateChapters(ctx, text, segments)
		if err != nil {
			degrade("chapters", err)
			return
		}
		mu.Lock()
		chapters = generated
		mu.Unlock()
	}()

	wg.Wait()

	if fatal != nil {
		return models.Artifacts{}, fmt.Errorf("failed to summarize content: %w", fatal)
	}

	art := models.Artifacts{
		Summary:  s.mergeSummaries(ctx, chunkSummaries),
		Tags:     mergeTags(chunkTags),
		Chapters: sortChapters(chapters),
		Degraded: dedupeSections(degraded),
	}
	return art, nil
}

// mergeSummaries collapses per-chunk summaries into one. A single chunk
// passes through; multiple chunks are re-summarized by one more call, with
// the concatenation as the fallback.
func (s *Summarizer) mergeSummaries(ctx context.Context, summaries []string) string {
	if len(summaries) == 1 {
		return summaries[0]
	}
	joined := strings.Join(summaries, "\n\n")
	merged, err := s.model.Complete(ctx,
		"Generate a concise summary.",
		"Summarize this content in 2-3 paragraphs:\n\n"+truncate(joined, summaryInputCap))
	if err != nil {
		s.logger.Warn("failed to merge chunk summaries", "error", err)
		return joined
	}
	return merged
}

// generateChapters builds chapters from timestamped segments when
// available; otherwise asks the model for 3-5 chapters directly.
func (s *Summarizer) generateChapters(ctx context.Context, text string, segments []models.Segment) ([]models.Chapter, error) {
	if len(segments) == 0 {
		reply, err := s.model.Complete(ctx,
			"Generate concise and relevant chapters.",
			"Generate 3-5 chapters with timestamps for:\n\n"+truncate(text, chapterInputCap))
		if err != nil {
			return nil, fmt.Errorf("failed to generate chapters: %w", err)
		}
		return []models.Chapter{{Timestamp: "00:00", Title: "Start", Summary: reply}}, nil
	}

	// Bucket the captions: one chapter per 30 entries.
	type bucket struct {
		start string
		text  strings.Builder
	}
	var buckets []*bucket
	current := &bucket{start: segments[0].Time}
	for i, seg := range segments {
		current.text.WriteString(" ")
		current.text.WriteString(seg.Text)
		if i > 0 && i%chapterBucket == 0 {
			buckets = append(buckets, current)
			current = &bucket{start: seg.Time}
		}
	}
	if strings.TrimSpace(current.text.String()) != "" {
		buckets = append(buckets, current)
	}

	chapters := make([]models.Chapter, 0, len(buckets))
	for _, b := range buckets {
		summary, err := s.model.Complete(ctx,
			"Generate a very concise summary.",
			"Summarize this in one sentence:\n\n"+truncate(strings.TrimSpace(b.text.String()), bucketInputCap))
		if err != nil {
			return nil, fmt.Errorf("failed to summarize chapter bucket: %w", err)
		}
		chapters = append(chapters, models.Chapter{
			Timestamp: b.start,
			Title:     chapterTitle(summary),
			Summary:   summary,
		})
	}
	return chapters, nil
}

// chapterTitle derives a short title from a chapter summary.
func chapterTitle(summary string) string {
	if len(summary) <= 50 {
		return summary
	}
	return truncate(summary, 50) + "..."
}

func mergeTags(perChunk [][]string) []string {
	var all []string
	for _, tags := range perChunk {
		all = append(all, tags...)
	}
	return CleanTags(all)
}

func sortChapters(chapters []models.Chapter) []models.Chapter {
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Timestamp < chapters[j].Timestamp
	})
	return chapters
}

func dedupeSections(sections []string) []string {
	seen := make(map[string]struct{}, len(sections))
	var out []string
	for _, s := range sections {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
