// Package youtube fetches video metadata, captions, and audio for the
// video variant of the source fetcher.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/ccomgroup/content-analyzer/models"
)

const (
	DefaultDataBaseURL     = "https://www.googleapis.com/youtube/v3"
	DefaultCaptionsBaseURL = "https://video.google.com"
)

// ErrNoTranscript means no captions were available in any requested
// language. Callers fall back to the audio-transcription path.
var ErrNoTranscript = errors.New("no captions available")

// Client talks to the video platform's metadata, captions, and audio
// extraction endpoints.
type Client struct {
	DataBaseURL     string
	CaptionsBaseURL string
	// ExtractorBaseURL points at an audio extraction service exposing
	// GET /audio/{videoID}. Empty disables the audio fallback.
	ExtractorBaseURL string
	APIKey           string
	Languages        []string
	HTTPClient       *http.Client
}

// NewClient builds a client with the default endpoints. languages lists
// caption languages in preference order; nil means en, es.
func NewClient(apiKey, extractorBaseURL string, languages []string) *Client {
	if len(languages) == 0 {
		languages = []string{"en", "es"}
	}
	return &Client{
		DataBaseURL:      DefaultDataBaseURL,
		CaptionsBaseURL:  DefaultCaptionsBaseURL,
		ExtractorBaseURL: strings.TrimRight(extractorBaseURL, "/"),
		APIKey:           apiKey,
		Languages:        languages,
		HTTPClient:       &http.Client{},
	}
}

type videoListResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   map[string]struct {
				URL    string `json:"url"`
				Width  int    `json:"width"`
				Height int    `json:"height"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"` // ISO-8601, e.g. PT1H2M3S
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Metadata fetches the normalized metadata for a video ID.
func (c *Client) Metadata(ctx context.Context, videoID string) (models.Metadata, error) {
	endpoint := fmt.Sprintf("%s/videos?part=snippet,contentDetails,statistics&id=%s&key=%s",
		c.DataBaseURL, url.QueryEscape(videoID), url.QueryEscape(c.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Metadata{}, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return models.Metadata{}, fmt.Errorf("failed to fetch video metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Metadata{}, fmt.Errorf("metadata endpoint returned status %d", resp.StatusCode)
	}

	var parsed videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.Metadata{}, fmt.Errorf("failed to decode metadata response: %w", err)
	}
	if len(parsed.Items) == 0 {
		return models.Metadata{}, fmt.Errorf("video %s not found", videoID)
	}

	item := parsed.Items[0]
	views, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
	return models.Metadata{
		Title:       item.Snippet.Title,
		Author:      item.Snippet.ChannelTitle,
		Views:       views,
		Duration:    parseISODuration(item.ContentDetails.Duration),
		PublishDate: item.Snippet.PublishedAt,
		Thumbnail:   bestThumbnail(item.Snippet.Thumbnails),
	}, nil
}

// bestThumbnail picks the largest available thumbnail by pixel area.
func bestThumbnail(thumbs map[string]struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}) string {
	best := ""
	bestArea := -1
	for _, t := range thumbs {
		area := t.Width * t.Height
		if area > bestArea {
			bestArea = area
			best = t.URL
		}
	}
	return best
}

// parseISODuration converts an ISO-8601 duration (PT1H2M3S) to seconds.
// Malformed input yields 0.
func parseISODuration(iso string) int {
	s := strings.TrimPrefix(iso, "PT")
	if s == iso {
		return 0
	}
	total := 0
	num := ""
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
		case r == 'H' || r == 'M' || r == 'S':
			n, err := strconv.Atoi(num)
			if err != nil {
				return 0
			}
			switch r {
			case 'H':
				total += n * 3600
			case 'M':
				total += n * 60
			case 'S':
				total += n
			}
			num = ""
		default:
			return 0
		}
	}
	return total
}

// DownloadAudio streams the best audio track for a video to a temporary
// file and returns its path. The caller removes the file.
func (c *Client) DownloadAudio(ctx context.Context, videoID string) (string, error) {
	if c.ExtractorBaseURL == "" {
		return "", errors.New("no audio extraction endpoint configured")
	}
	endpoint := fmt.Sprintf("%s/audio/%s", c.ExtractorBaseURL, url.PathEscape(videoID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("audio endpoint returned status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "content-analyzer-*.mp3")
	if err != nil {
		return "", fmt.Errorf("failed to create temp audio file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temp audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
