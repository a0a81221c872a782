// Package publisher formats processed records and pushes them to the note
// service as weblink notes.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ccomgroup/content-analyzer/models"
	"github.com/ccomgroup/content-analyzer/pkg/artwork"
	"github.com/ccomgroup/content-analyzer/pkg/capacities"
)

// abstractArtPrompt asks the image endpoint for repository preview art.
const abstractArtPrompt = "Create an abstract digital artwork merging Van Gogh and Pollock styles. " +
	"Use dynamic swirling patterns, energetic splashes, and bold color harmonies. " +
	"Make it purely abstract - NO text, NO symbols, NO literal representations. " +
	"Style: Modern, expressive, with rich textures and emotional depth. " +
	"Let the energy reflect the essence of code and creativity."

// ImageGenerator produces a hosted image URL for a prompt. The hosted
// model client satisfies this; a nil generator skips model-drawn art.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Publisher turns a record into one save-weblink call. Publishing the same
// record twice creates two notes.
type Publisher struct {
	Notes  *capacities.Client
	Images ImageGenerator
	Logger *slog.Logger

	// WorkDir holds locally generated preview art before upload.
	WorkDir string
}

// Publish formats the record, resolves a preview image, and issues exactly
// one save-weblink call. Any non-2xx from the note service is a hard
// failure.
func (p *Publisher) Publish(ctx context.Context, record *models.Record) (*capacities.Weblink, error) {
	if p.Notes == nil {
		return nil, fmt.Errorf("note service client not configured")
	}

	wr := capacities.WeblinkRequest{
		URL:                  record.Ref.URL,
		TitleOverwrite:       record.Meta.Title,
		DescriptionOverwrite: Description(record),
		MDText:               FormatMarkdown(record),
		Tags:                 record.Artifacts.Tags,
		PreviewImageURL:      p.resolvePreviewImage(ctx, record),
	}

	link, err := p.Notes.SaveWeblink(ctx, wr)
	if err != nil {
		return nil, fmt.Errorf("failed to publish note: %w", err)
	}
	return link, nil
}

// resolvePreviewImage picks the note's preview: videos use the platform
// thumbnail directly; repositories get generated abstract art, uploaded to
// the asset endpoint to obtain a hosted URL. Preview resolution failures
// degrade to no image.
func (p *Publisher) resolvePreviewImage(ctx context.Context, record *models.Record) string {
	if record.Ref.Kind == models.KindVideo {
		return record.Meta.Thumbnail
	}

	if p.Images != nil {
		if url, err := p.Images.GenerateImage(ctx, abstractArtPrompt); err == nil {
			return url
		} else {
			p.logger().Warn("image generation failed, falling back to local artwork", "error", err)
		}
	}

	localPath, err := p.drawLocalArt(record)
	if err != nil {
		p.logger().Warn("failed to draw preview artwork", "error", err)
		return record.Meta.Thumbnail
	}
	defer os.Remove(localPath)

	hosted, err := p.Notes.UploadAsset(ctx, localPath)
	if err != nil {
		p.logger().Warn("failed to upload preview artwork", "error", err)
		return record.Meta.Thumbnail
	}
	return hosted
}

// drawLocalArt renders a deterministic abstract PNG for the repository.
func (p *Publisher) drawLocalArt(record *models.Record) (string, error) {
	dir := p.WorkDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create artwork directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s_image.png", record.Ref.Owner, record.Ref.Repo)
	path := filepath.Join(dir, name)

	var seed int64
	for _, r := range record.Meta.Title {
		seed = seed*31 + int64(r)
	}
	if err := artwork.Save(path, 800, 400, seed); err != nil {
		return "", err
	}
	return path, nil
}

func (p *Publisher) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}
