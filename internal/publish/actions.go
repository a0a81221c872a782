// Package publish pushes a processed record to the note service.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ccomgroup/content-analyzer/internal/common"
	"github.com/ccomgroup/content-analyzer/pkg/caching"
	"github.com/ccomgroup/content-analyzer/pkg/capacities"
	"github.com/ccomgroup/content-analyzer/pkg/db"
	"github.com/ccomgroup/content-analyzer/pkg/llm"
	"github.com/ccomgroup/content-analyzer/pkg/publisher"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Output is the structured result of one publish call.
type Output struct {
	URL     string `json:"url" yaml:"url"`
	Title   string `json:"title" yaml:"title"`
	NoteID  string `json:"note_id,omitempty" yaml:"note_id,omitempty"`
	NoteURL string `json:"note_url,omitempty" yaml:"note_url,omitempty"`
}

func PublishAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	ctx := context.Background()

	rawURL := c.String("url")
	if rawURL == "" && c.NArg() > 0 {
		rawURL = c.Args().First()
	}
	if rawURL == "" {
		fmt.Fprintln(os.Stderr, "Error: No URL provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  content-analyzer publish --url "https://github.com/owner/repo"`)
		os.Exit(1)
	}
	rawURL = common.SanitizeURL(rawURL)

	// TTL zero: a record is publishable for as long as it sits in the cache.
	cache, err := caching.NewCache(c.String("cache-dir"), 0)
	if err != nil {
		logger.Error("failed to open cache", "error", err)
		os.Exit(2)
	}

	record, ok := cache.Lookup(rawURL)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: No processed record for %s\n", rawURL)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintf(os.Stderr, "Run: content-analyzer process --urls \"%s\"\n", rawURL)
		os.Exit(1)
	}

	notes := capacities.NewClientFromEnv()
	if notes == nil {
		logger.Error("CAPACITIES_API_TOKEN and CAPACITIES_SPACE_ID must be set")
		os.Exit(2)
	}

	pub := &publisher.Publisher{
		Notes:   notes,
		Logger:  logger,
		WorkDir: c.String("work-dir"),
	}
	// Model-drawn preview art is optional; without an API key the publisher
	// falls back to locally generated artwork.
	if hosted := llm.NewClientFromEnv(""); hosted != nil {
		pub.Images = hosted
	}

	link, err := pub.Publish(ctx, record)
	if err != nil {
		logger.Error("failed to publish note", "url", rawURL, "error", err)
		os.Exit(1)
	}
	logger.Info("Note published", "url", rawURL, "note_url", link.URL)

	recordPublish(logger, c.String("db"), record.Ref.URL, string(record.Ref.Kind), link)

	out := Output{
		URL:     record.Ref.URL,
		Title:   record.Meta.Title,
		NoteID:  link.ID,
		NoteURL: link.URL,
	}
	var outputData []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "yaml" {
		outputData, marshalErr = yaml.Marshal(out)
	} else {
		outputData, marshalErr = json.MarshalIndent(out, "", "  ")
	}
	if marshalErr != nil {
		logger.Error("failed to marshal output", "error", marshalErr)
		os.Exit(2)
	}
	fmt.Println(string(outputData))

	return nil
}

// recordPublish writes the publish result to the history database.
// Best-effort: the note already exists, so failures only warn.
func recordPublish(logger *slog.Logger, dbPath, rawURL, kind string, link *capacities.Weblink) {
	var database *db.DB
	var err error
	if dbPath != "" {
		database, err = db.OpenAt(dbPath)
	} else {
		database, err = db.Open()
	}
	if err != nil {
		logger.Warn("failed to open database, publish not recorded", "error", err)
		return
	}
	defer database.Close()

	urlID, err := database.InsertURL(rawURL, kind)
	if err != nil {
		logger.Warn("failed to resolve URL ID, publish not recorded", "error", err)
		return
	}
	if err := database.RecordPublish(urlID, link.ID, link.URL); err != nil {
		logger.Warn("failed to record publish", "error", err)
	}
}
