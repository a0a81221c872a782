package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Kind discriminates the two supported content sources.
type Kind string

const (
	KindVideo      Kind = "video"
	KindRepository Kind = "repository"
)

// ErrUnsupportedURL is returned when a URL is neither a YouTube video nor a
// GitHub repository.
var ErrUnsupportedURL = errors.New("unsupported URL: expected a YouTube video or GitHub repository")

// ContentRef is a classified URL. Immutable once built.
type ContentRef struct {
	URL  string `json:"url" yaml:"url"`
	Kind Kind   `json:"kind" yaml:"kind"`

	// VideoID is set for video refs.
	VideoID string `json:"video_id,omitempty" yaml:"video_id,omitempty"`
	// Owner and Repo are set for repository refs.
	Owner string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Repo  string `json:"repo,omitempty" yaml:"repo,omitempty"`
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:embed/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:youtu\.be/)([0-9A-Za-z_-]{11})`),
}

// VideoID extracts the 11-character YouTube video ID from a URL.
// Returns "" if no ID is present.
func VideoID(rawURL string) string {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(rawURL); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

func isYouTubeURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, pattern := range []string{"youtube.com/watch", "youtu.be/", "youtube.com/shorts/"} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

func isGitHubURL(rawURL string) bool {
	return strings.Contains(strings.ToLower(rawURL), "github.com/")
}

// splitGitHubURL extracts owner and repo from a GitHub repository URL.
func splitGitHubURL(rawURL string) (owner, repo string, ok bool) {
	trimmed := strings.TrimRight(rawURL, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 5 { // https://github.com/owner/repo
		return "", "", false
	}
	owner = parts[len(parts)-2]
	repo = parts[len(parts)-1]
	if owner == "" || repo == "" || strings.EqualFold(owner, "github.com") {
		return "", "", false
	}
	return owner, repo, true
}

// Classify builds a ContentRef from a raw URL. The ref keeps the URL string
// exactly as given; cache keys and publish calls both use the raw form.
func Classify(rawURL string) (ContentRef, error) {
	switch {
	case isYouTubeURL(rawURL):
		id := VideoID(rawURL)
		if id == "" {
			return ContentRef{}, fmt.Errorf("failed to extract video ID from %q: %w", rawURL, ErrUnsupportedURL)
		}
		return ContentRef{URL: rawURL, Kind: KindVideo, VideoID: id}, nil
	case isGitHubURL(rawURL):
		owner, repo, ok := splitGitHubURL(rawURL)
		if !ok {
			return ContentRef{}, fmt.Errorf("failed to extract owner/repo from %q: %w", rawURL, ErrUnsupportedURL)
		}
		return ContentRef{URL: rawURL, Kind: KindRepository, Owner: owner, Repo: repo}, nil
	default:
		return ContentRef{}, fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}
}
