package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ccomgroup/content-analyzer/models"
)

// Transcriber converts a downloaded audio file into text. The hosted
// speech-to-text client satisfies this.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}

// Fetcher implements the video variant of the source fetcher: platform
// metadata, captions as the primary transcript source, and
// download-and-transcribe as the fallback.
type Fetcher struct {
	Client      *Client
	Transcriber Transcriber
	Logger      *slog.Logger
}

// Fetch returns metadata and a transcript for a video reference. The
// language hint is passed to the speech-to-text fallback. Both transcript
// paths failing is a fetch error.
func (f *Fetcher) Fetch(ctx context.Context, ref models.ContentRef, language string) (models.Metadata, models.Transcript, error) {
	meta, err := f.Client.Metadata(ctx, ref.VideoID)
	if err != nil {
		return models.Metadata{}, models.Transcript{}, fmt.Errorf("failed to fetch video metadata: %w", err)
	}

	segments, err := f.Client.Transcript(ctx, ref.VideoID)
	if err == nil {
		return meta, models.Transcript{
			Text:     models.JoinSegments(segments),
			Segments: segments,
		}, nil
	}
	f.logger().Info("captions unavailable, falling back to audio transcription", "video_id", ref.VideoID, "error", err)
	captionErr := err

	text, err := f.transcribeAudio(ctx, ref.VideoID, language)
	if err != nil {
		if errors.Is(captionErr, ErrNoTranscript) {
			return models.Metadata{}, models.Transcript{}, fmt.Errorf("%w (audio fallback: %v)", ErrNoTranscript, err)
		}
		return models.Metadata{}, models.Transcript{}, fmt.Errorf("failed to obtain transcript: %w", err)
	}
	return meta, models.Transcript{Text: text}, nil
}

// transcribeAudio downloads the audio track, submits it for transcription,
// and removes the temp file whether or not transcription succeeded.
func (f *Fetcher) transcribeAudio(ctx context.Context, videoID, language string) (string, error) {
	audioPath, err := f.Client.DownloadAudio(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("failed to download audio: %w", err)
	}
	defer func() {
		if rmErr := os.Remove(audioPath); rmErr != nil {
			f.logger().Warn("failed to remove temp audio file", "path", audioPath, "error", rmErr)
		}
	}()

	text, err := f.Transcriber.Transcribe(ctx, audioPath, language)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return text, nil
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Logger
}
