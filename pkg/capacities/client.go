// Package capacities is the client for the note-publishing service.
package capacities

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.capacities.io"

// Client is a token- and space-scoped client for the Capacities API.
type Client struct {
	BaseURL    string
	Token      string
	SpaceID    string
	HTTPClient *http.Client
}

// NewClient creates a Capacities client for one space.
func NewClient(token, spaceID string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Token:      token,
		SpaceID:    spaceID,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientFromEnv builds a client from CAPACITIES_API_TOKEN and
// CAPACITIES_SPACE_ID. Returns nil when either is missing.
func NewClientFromEnv() *Client {
	token := strings.TrimSpace(os.Getenv("CAPACITIES_API_TOKEN"))
	spaceID := strings.TrimSpace(os.Getenv("CAPACITIES_SPACE_ID"))
	if token == "" || spaceID == "" {
		return nil
	}
	return NewClient(token, spaceID)
}

// WeblinkRequest is the save-weblink payload.
type WeblinkRequest struct {
	SpaceID              string   `json:"spaceId"`
	URL                  string   `json:"url"`
	TitleOverwrite       string   `json:"titleOverwrite,omitempty"`
	DescriptionOverwrite string   `json:"descriptionOverwrite,omitempty"`
	MDText               string   `json:"mdText,omitempty"`
	Tags                 []string `json:"tags,omitempty"`
	PreviewImageURL      string   `json:"previewImageUrl,omitempty"`
}

// Weblink is the created note's durable reference.
type Weblink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SaveWeblink creates a weblink note. Every call creates a new note; there
// is no idempotency key. Any non-2xx response is a hard failure.
func (c *Client) SaveWeblink(ctx context.Context, wr WeblinkRequest) (*Weblink, error) {
	wr.SpaceID = c.SpaceID
	blob, err := json.Marshal(wr)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/save-weblink", bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call save-weblink: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("save-weblink returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var link Weblink
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		// Some responses carry an empty body; the original URL is still a
		// usable reference.
		return &Weblink{URL: wr.URL}, nil
	}
	if link.URL == "" {
		link.URL = wr.URL
	}
	return &link, nil
}

type assetResponse struct {
	URL string `json:"url"`
}

// UploadAsset pushes a local file to the asset endpoint and returns its
// hosted URL, used as a note preview image.
func (c *Client) UploadAsset(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open asset file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to buffer asset file: %w", err)
	}
	_ = mw.WriteField("spaceId", c.SpaceID)
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/upload-asset", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call upload-asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload-asset returned status %d", resp.StatusCode)
	}

	var parsed assetResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode upload-asset response: %w", err)
	}
	return parsed.URL, nil
}
