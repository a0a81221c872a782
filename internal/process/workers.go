package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ccomgroup/content-analyzer/models"
	"github.com/ccomgroup/content-analyzer/pkg/analytics"
	"github.com/ccomgroup/content-analyzer/pkg/caching"
	"github.com/ccomgroup/content-analyzer/pkg/db"
	"github.com/ccomgroup/content-analyzer/pkg/github"
	"github.com/ccomgroup/content-analyzer/pkg/language"
	"github.com/ccomgroup/content-analyzer/pkg/llm"
	"github.com/ccomgroup/content-analyzer/pkg/preview"
	"github.com/ccomgroup/content-analyzer/pkg/summarize"
	"github.com/ccomgroup/content-analyzer/pkg/youtube"
)

// pipeline bundles the clients a worker needs to take one URL from raw
// string to cached record.
type pipeline struct {
	cache      *caching.Cache
	database   *db.DB
	videos     *youtube.Fetcher
	repos      *github.Fetcher
	summarizer *summarize.Summarizer
	detector   *language.Detector
	preview    *preview.Extractor

	// language is the caption/transcription hint passed to the video path.
	language   string
	forceFetch bool
}

func run(ctx context.Context, logger *slog.Logger, config *models.ProcessConfig, p *pipeline) ([]Result, map[string]int, error) {
	a := &analytics.Analytics{}

	logger.Info("Starting concurrent processing phase", "url_count", len(config.URLs), "workers", config.WorkerCount, "force_fetch", p.forceFetch)
	var wg sync.WaitGroup
	jobs := make(chan Job, len(config.URLs))
	results := make(chan Result, len(config.URLs))

	for w := 1; w <= config.WorkerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, p, a, &wg, jobs, results)
	}

	for _, rawURL := range config.URLs {
		jobs <- Job{URL: rawURL}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All workers finished")

	allResults := make([]Result, 0, len(config.URLs))
	var runErr error
	intermediateCounts := []map[string]int{}
	for result := range results {
		allResults = append(allResults, result)
		if result.Error != nil {
			runErr = fmt.Errorf("one or more jobs failed")
		}
		if result.WordCounts != nil {
			intermediateCounts = append(intermediateCounts, result.WordCounts)
		}
	}

	return allResults, analytics.Merge(intermediateCounts), runErr
}

func worker(ctx context.Context, id int, logger *slog.Logger, p *pipeline, a *analytics.Analytics, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("Worker started job", "worker_id", id, "url", job.URL)
		results <- p.processURL(ctx, id, logger, a, job)
	}
}

// processURL runs the full pipeline for one URL: classify, consult the
// cache, fetch, detect language, summarize, store. History recording is
// best-effort throughout; the record is the product.
func (p *pipeline) processURL(ctx context.Context, id int, logger *slog.Logger, a *analytics.Analytics, job Job) Result {
	result := Result{URL: job.URL}

	ref, err := models.Classify(job.URL)
	if err != nil {
		logger.Error("Unsupported URL", "worker_id", id, "url", job.URL, "error", err)
		result.Error = err
		result.ErrorType = "validation_error"
		return result
	}

	var urlID int64
	if p.database != nil {
		urlID, err = p.database.InsertURL(job.URL, string(ref.Kind))
		if err != nil {
			logger.Warn("Failed to insert URL to DB", "url", job.URL, "error", err)
		}
	}

	recordAccess := func(cacheHit bool, errorType string, success bool) {
		if p.database == nil || urlID <= 0 {
			return
		}
		if dbErr := p.database.RecordAccess(urlID, cacheHit, errorType, success); dbErr != nil {
			logger.Warn("Failed to record access to DB", "url", job.URL, "error", dbErr)
		}
	}

	if !p.forceFetch {
		if cached, ok := p.cache.Lookup(job.URL); ok {
			logger.Info("Cache hit, using stored record", "worker_id", id, "url", job.URL)
			result.Record = cached
			result.CacheHit = true
			recordAccess(true, "", true)
			return result
		}
	}

	record := models.NewRecord(ref)

	switch ref.Kind {
	case models.KindVideo:
		meta, transcript, fetchErr := p.videos.Fetch(ctx, ref, p.language)
		if fetchErr != nil {
			logger.Error("Error fetching video content", "worker_id", id, "url", job.URL, "error", fetchErr)
			result.Error = fetchErr
			result.ErrorType = classifyFetchError(fetchErr)
			recordAccess(false, result.ErrorType, false)
			return result
		}
		record.Meta = meta
		record.Source = transcript
	case models.KindRepository:
		meta, transcript, paths, fetchErr := p.repos.Fetch(ctx, ref)
		if fetchErr != nil {
			logger.Error("Error fetching repository content", "worker_id", id, "url", job.URL, "error", fetchErr)
			result.Error = fetchErr
			result.ErrorType = classifyFetchError(fetchErr)
			recordAccess(false, result.ErrorType, false)
			return result
		}
		record.Meta = meta
		record.Source = transcript
		record.FileTree = paths
		p.enrichRepoPreview(logger, record)
	}

	if p.detector != nil {
		lang, confidence := p.detector.Detect(record.Source.Text)
		record.Meta.Language = lang
		record.Meta.LanguageConfidence = confidence
	}

	artifacts, err := p.summarizer.Summarize(ctx, record.Source.Text, record.Source.Segments)
	if err != nil {
		logger.Error("Error summarizing content", "worker_id", id, "url", job.URL, "error", err)
		result.Error = err
		if errors.Is(err, llm.ErrRateLimited) {
			result.ErrorType = "rate_limited"
		} else {
			result.ErrorType = "processing_error"
		}
		recordAccess(false, result.ErrorType, false)
		return result
	}
	record.Artifacts = artifacts

	if err := p.cache.Store(job.URL, record); err != nil {
		logger.Warn("Failed to store record in cache", "url", job.URL, "error", err)
	}

	if p.database != nil && urlID > 0 {
		if err := p.database.UpdateURLMetadata(urlID, record.Meta.Title, record.Meta.Author, record.Meta.Language); err != nil {
			logger.Warn("Failed to update URL metadata in DB", "url", job.URL, "error", err)
		}
	}
	recordAccess(false, "", true)

	result.Record = record
	result.WordCounts = a.WordFrequency(record.Source.Text)
	logger.Info("Worker finished processing", "worker_id", id, "url", job.URL)
	return result
}

// enrichRepoPreview fills the repository record's thumbnail from the page's
// og-image. Failures leave the thumbnail empty; the publisher falls back to
// generated artwork.
func (p *pipeline) enrichRepoPreview(logger *slog.Logger, record *models.Record) {
	if p.preview == nil {
		return
	}
	info, err := p.preview.Extract(record.Ref.URL)
	if err != nil {
		logger.Warn("Failed to extract page preview", "url", record.Ref.URL, "error", err)
		return
	}
	record.Meta.Thumbnail = info.Image
}

// classifyFetchError distinguishes sources that exist but carry no usable
// content from plain transport failures.
func classifyFetchError(err error) string {
	if errors.Is(err, youtube.ErrNoTranscript) || errors.Is(err, github.ErrNoReadme) {
		return "not_found"
	}
	return "fetch_error"
}
