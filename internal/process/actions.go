package process

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ccomgroup/content-analyzer/internal/common"
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
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func ProcessAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()
	finalOutput := &FinalOutput{}
	ctx := context.Background()

	defaults, err := models.LoadDefaults(c.String("config"))
	if err != nil {
		logger.Error("failed to load config file", "error", err)
		os.Exit(2)
	}

	config := &models.ProcessConfig{
		URLs:        []string{},
		WorkerCount: c.Int("workers"),
		Language:    c.String("language"),
		Deep:        c.Bool("deep"),
	}
	if !c.IsSet("workers") && defaults.Workers > 0 {
		config.WorkerCount = defaults.Workers
	}

	if c.IsSet("urls") {
		config.URLs = strings.Split(c.String("urls"), ",")
	}
	if len(config.URLs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No URLs provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  content-analyzer process --urls "https://www.youtube.com/watch?v=abc,https://github.com/owner/repo"`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: content-analyzer process --help")
		os.Exit(1)
	}

	// Sanitize and validate all URLs before processing (fail fast)
	sanitizedURLs, invalidURLs := common.SanitizeAndValidateURLs(config.URLs)
	if len(invalidURLs) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d URL(s) are malformed (even after cleanup):\n", len(invalidURLs))
		for _, badURL := range invalidURLs {
			fmt.Fprintf(os.Stderr, "  - %s\n", badURL)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Note: URLs are auto-cleaned (whitespace trimmed, trailing punctuation removed, markdown links extracted)")
		os.Exit(1)
	}
	config.URLs = sanitizedURLs

	var maxAge time.Duration
	maxAgeStr := c.String("max-age")
	if !c.IsSet("max-age") && defaults.MaxAge != "" {
		maxAgeStr = defaults.MaxAge
	}
	maxAge, err = time.ParseDuration(maxAgeStr)
	if err != nil {
		logger.Error("invalid max-age duration", "error", err)
		os.Exit(2)
	}

	cacheDir := c.String("cache-dir")
	if !c.IsSet("cache-dir") && defaults.CacheDir != "" {
		cacheDir = defaults.CacheDir
	}
	cache, err := caching.NewCache(cacheDir, maxAge)
	if err != nil {
		logger.Error("failed to initialize cache", "error", err)
		os.Exit(2)
	}

	database, err := openDatabase(c.String("db"))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	model, err := buildModel(ctx, c, defaults, logger)
	if err != nil {
		logger.Error("failed to configure model backend", "error", err)
		os.Exit(2)
	}

	// The hosted client also serves the speech-to-text fallback. Without an
	// API key it reports not-configured instead of transcribing.
	hosted := llm.NewClientFromEnv(c.String("model"))

	p := &pipeline{
		cache:    cache,
		database: database,
		videos: &youtube.Fetcher{
			Client:      youtube.NewClient(os.Getenv("YOUTUBE_API_KEY"), c.String("extractor-url"), defaults.Languages),
			Transcriber: hosted,
			Logger:      logger,
		},
		repos: &github.Fetcher{
			Client: github.NewClient(os.Getenv("GITHUB_TOKEN")),
			Logger: logger,
			Deep:   config.Deep,
		},
		summarizer: summarize.New(model, logger),
		detector:   language.NewDetector(),
		preview:    preview.NewExtractor(),
		language:   config.Language,
		forceFetch: c.Bool("force-fetch"),
	}

	allResults, finalWordCounts, runErr := run(ctx, logger, config, p)

	stats := Stats{
		TotalURLs:        len(config.URLs),
		TotalTimeSeconds: time.Since(startTime).Seconds(),
		TopKeywords:      analytics.TopKeywords(finalWordCounts, 25),
	}

	rateLimited := false
	outputs := make([]ResultOutput, 0, len(allResults))
	for _, r := range allResults {
		out := ResultOutput{URL: r.URL, CacheHit: r.CacheHit}
		if r.CacheHit {
			stats.CacheHits++
		}
		if r.Error != nil {
			stats.Failed++
			out.Status = "failed"
			out.Error = r.Error.Error()
			out.ErrorType = r.ErrorType
			if r.ErrorType == "rate_limited" {
				rateLimited = true
			}
		} else {
			stats.Successful++
			out.Status = "success"
			out.Kind = string(r.Record.Ref.Kind)
			out.Title = r.Record.Meta.Title
			out.CacheFile = cache.EntryPath(r.URL)
			out.Summary = r.Record.Artifacts.Summary
			out.Tags = r.Record.Artifacts.Tags
			out.Chapters = len(r.Record.Artifacts.Chapters)
			out.Language = r.Record.Meta.Language
			out.Degraded = r.Record.Artifacts.Degraded
		}
		outputs = append(outputs, out)
	}
	finalOutput.Results = outputs
	finalOutput.Stats = stats
	if runErr != nil {
		finalOutput.Status = "partial_failure"
	} else {
		finalOutput.Status = "success"
	}

	var outputData []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "yaml" {
		outputData, marshalErr = yaml.Marshal(finalOutput)
	} else {
		outputData, marshalErr = json.MarshalIndent(finalOutput, "", "  ")
	}
	if marshalErr != nil {
		logger.Error("failed to marshal final output", "error", marshalErr)
		os.Exit(2)
	}
	fmt.Println(string(outputData))

	if rateLimited {
		fmt.Fprintln(os.Stderr, "Rate limited by the model endpoint. Please try again in about an hour.")
	}

	if stats.Failed == stats.TotalURLs {
		os.Exit(2)
	}
	if stats.Failed > 0 {
		os.Exit(1)
	}

	return nil
}

// openDatabase opens the history database, at the explicit path when given.
func openDatabase(path string) (*db.DB, error) {
	if path != "" {
		return db.OpenAt(path)
	}
	return db.Open()
}

// buildModel selects the chat backend: a locally hosted Ollama model or the
// hosted completion endpoint.
func buildModel(ctx context.Context, c *cli.Context, defaults *models.Defaults, logger *slog.Logger) (summarize.ChatCompleter, error) {
	modelType := strings.ToLower(c.String("model-type"))
	if !c.IsSet("model-type") && defaults.ModelType != "" {
		modelType = strings.ToLower(defaults.ModelType)
	}

	switch modelType {
	case "ollama":
		name := c.String("ollama-model")
		if !c.IsSet("ollama-model") && defaults.OllamaModel != "" {
			name = defaults.OllamaModel
		}
		client, err := llm.NewOllamaClient(name)
		if err != nil {
			return nil, err
		}
		if err := client.CheckModel(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using local model", "model", client.Model())
		return client, nil
	case "openai", "":
		name := c.String("model")
		if !c.IsSet("model") && defaults.Model != "" {
			name = defaults.Model
		}
		client := llm.NewClientFromEnv(name)
		if client == nil {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set (use --model-type ollama for a local model)")
		}
		logger.Info("Using hosted model", "model", client.Model())
		return client, nil
	default:
		return nil, fmt.Errorf("unknown model type %q (expected openai or ollama)", modelType)
	}
}
