// Package preview enriches published notes with page-level metadata
// (excerpt, site name, lead image) extracted from the URL's HTML.
package preview

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// PageInfo is the readable metadata of a web page.
type PageInfo struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Excerpt  string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	Image    string `json:"image,omitempty" yaml:"image,omitempty"`
	Favicon  string `json:"favicon,omitempty" yaml:"favicon,omitempty"`
}

// Extractor fetches a page and runs readability over it.
type Extractor struct {
	HTTPClient *http.Client
}

// NewExtractor creates an Extractor with a bounded request timeout.
func NewExtractor() *Extractor {
	return &Extractor{HTTPClient: &http.Client{Timeout: 15 * time.Second}}
}

// Extract fetches rawURL and returns its readable metadata. Failures are
// reported; callers treat enrichment as optional.
func (e *Extractor) Extract(rawURL string) (*PageInfo, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	resp, err := e.HTTPClient.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read page body: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(string(body)), parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to extract readable content: %w", err)
	}

	return &PageInfo{
		Title:    article.Title,
		Excerpt:  article.Excerpt,
		SiteName: article.SiteName,
		Image:    article.Image,
		Favicon:  article.Favicon,
	}, nil
}
