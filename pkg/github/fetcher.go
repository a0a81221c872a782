package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ccomgroup/content-analyzer/models"
)

// Fetcher implements the repository variant of the source fetcher. A
// missing README is fatal; tree and file traversal failures are non-fatal
// and simply omit that data.
type Fetcher struct {
	Client *Client
	Logger *slog.Logger
	// Deep enables tree traversal and per-file content collection.
	Deep bool
}

// Fetch returns metadata and the README body (HTML stripped) for a
// repository reference. With Deep set, the record text is extended with
// the repository's readable file contents.
func (f *Fetcher) Fetch(ctx context.Context, ref models.ContentRef) (models.Metadata, models.Transcript, []string, error) {
	readme, err := f.Client.Readme(ctx, ref.Owner, ref.Repo)
	if err != nil {
		return models.Metadata{}, models.Transcript{}, nil, err
	}

	meta := models.Metadata{
		Title:  fmt.Sprintf("%s/%s", ref.Owner, ref.Repo),
		Author: ref.Owner,
	}
	body := StripHTML(readme)

	if !f.Deep {
		return meta, models.Transcript{Text: body}, nil, nil
	}

	tree, err := f.Client.Tree(ctx, ref.Owner, ref.Repo)
	if err != nil {
		f.logger().Warn("tree traversal failed, continuing with README only", "repo", meta.Title, "error", err)
		return meta, models.Transcript{Text: body}, nil, nil
	}

	var paths []string
	var corpus strings.Builder
	corpus.WriteString(body)
	for _, entry := range tree {
		paths = append(paths, entry.Path)
		if entry.Type != "blob" || IsBinaryPath(entry.Path) {
			continue
		}
		content, err := f.Client.FileContent(ctx, ref.Owner, ref.Repo, entry.Path)
		if err != nil {
			f.logger().Warn("failed to fetch file content, skipping", "path", entry.Path, "error", err)
			continue
		}
		if content == "" {
			continue
		}
		corpus.WriteString("\n\nFile: ")
		corpus.WriteString(entry.Path)
		corpus.WriteString("\n")
		corpus.WriteString(content)
	}

	return meta, models.Transcript{Text: corpus.String()}, paths, nil
}

// StripHTML removes HTML tags from README bodies, keeping their text.
// Badge images and other void tags disappear entirely. Input that fails to
// parse is returned unchanged.
func StripHTML(body string) string {
	if !strings.Contains(body, "<") {
		return body
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return body
	}
	doc.Find("img, script, style").Remove()
	return strings.TrimSpace(doc.Text())
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Logger
}
