// Package github fetches README, tree, and file contents for the
// repository variant of the source fetcher.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://api.github.com"

// ErrNoReadme means the repository has no README; this is the "not found"
// condition and no cache entry is written for it.
var ErrNoReadme = errors.New("repository has no README")

// maxFileSize is the per-file ceiling for content extraction (1 MB).
const maxFileSize = 1000000

var binaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".pdf": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".exe": {},
}

// Client is a token-authenticated client for the source-hosting API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a client for api.github.com.
func NewClient(token string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Token:      token,
		HTTPClient: &http.Client{},
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return 0, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "token "+c.Token)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call GitHub API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("GitHub API returned status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode GitHub response: %w", err)
	}
	return resp.StatusCode, nil
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	Size     int64  `json:"size"`
}

// Readme fetches and decodes the repository README. A 404 maps to
// ErrNoReadme.
func (c *Client) Readme(ctx context.Context, owner, repo string) (string, error) {
	var parsed contentResponse
	status, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/readme", url.PathEscape(owner), url.PathEscape(repo)), &parsed)
	if status == http.StatusNotFound {
		return "", fmt.Errorf("%s/%s: %w", owner, repo, ErrNoReadme)
	}
	if err != nil {
		return "", err
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(parsed.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode README content: %w", err)
	}
	return string(decoded), nil
}

// TreeEntry is one path in the repository tree.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"` // blob | tree
	SHA  string `json:"sha"`
}

type refResponse struct {
	Object struct {
		SHA string `json:"sha"`
	} `json:"object"`
}

type treeResponse struct {
	Tree []TreeEntry `json:"tree"`
}

// Tree walks the repository tree iteratively with an explicit stack, one
// level per API call, starting from the default branch head.
func (c *Client) Tree(ctx context.Context, owner, repo string) ([]TreeEntry, error) {
	base := fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(repo))

	var ref refResponse
	if _, err := c.get(ctx, base+"/git/refs/heads/main", &ref); err != nil {
		// Older repositories still use master as the default branch.
		if _, err := c.get(ctx, base+"/git/refs/heads/master", &ref); err != nil {
			return nil, fmt.Errorf("failed to resolve default branch: %w", err)
		}
	}

	type frame struct {
		prefix string
		sha    string
	}
	stack := []frame{{prefix: "", sha: ref.Object.SHA}}
	var items []TreeEntry

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var level treeResponse
		if _, err := c.get(ctx, base+"/git/trees/"+top.sha, &level); err != nil {
			return nil, fmt.Errorf("failed to fetch tree level: %w", err)
		}
		for _, entry := range level.Tree {
			fullPath := strings.TrimPrefix(top.prefix+"/"+entry.Path, "/")
			items = append(items, TreeEntry{Path: fullPath, Type: entry.Type, SHA: entry.SHA})
			if entry.Type == "tree" {
				stack = append(stack, frame{prefix: fullPath, sha: entry.SHA})
			}
		}
	}
	return items, nil
}

// IsBinaryPath reports whether a path has a known binary extension.
func IsBinaryPath(path string) bool {
	lower := strings.ToLower(path)
	for ext := range binaryExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// FileContent fetches one file's decoded text. Binary-looking and
// oversized files return "" with no error.
func (c *Client) FileContent(ctx context.Context, owner, repo, path string) (string, error) {
	if IsBinaryPath(path) {
		return "", nil
	}

	var parsed contentResponse
	if _, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/contents/%s", url.PathEscape(owner), url.PathEscape(repo), path), &parsed); err != nil {
		return "", err
	}
	if parsed.Encoding != "base64" || parsed.Size > maxFileSize {
		return "", nil
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(parsed.Content, "\n", ""))
	if err != nil {
		return "", nil // Likely binary content despite the extension.
	}
	return string(decoded), nil
}
