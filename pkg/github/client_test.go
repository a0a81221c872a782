package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	c := NewClient("test-token")
	c.BaseURL = srv.URL
	return c, srv.Close
}

func TestReadme(t *testing.T) {
	readme := "# Widget\nA tool."
	c, closeSrv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo/readme" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "token test-token" {
			t.Errorf("Authorization = %q, want token auth", got)
		}
		json.NewEncoder(w).Encode(contentResponse{
			Content:  base64.StdEncoding.EncodeToString([]byte(readme)),
			Encoding: "base64",
		})
	})
	defer closeSrv()

	got, err := c.Readme(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("Readme() failed: %v", err)
	}
	if got != readme {
		t.Errorf("Readme() = %q, want %q", got, readme)
	}
}

func TestReadme_NotFound(t *testing.T) {
	c, closeSrv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer closeSrv()

	_, err := c.Readme(context.Background(), "owner", "empty")
	if !errors.Is(err, ErrNoReadme) {
		t.Errorf("error = %v, want ErrNoReadme", err)
	}
}

func TestTree(t *testing.T) {
	c, closeSrv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/owner/repo/git/refs/heads/main":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"object": map[string]string{"sha": "root-sha"},
			})
		case "/repos/owner/repo/git/trees/root-sha":
			json.NewEncoder(w).Encode(treeResponse{Tree: []TreeEntry{
				{Path: "main.go", Type: "blob", SHA: "blob-1"},
				{Path: "internal", Type: "tree", SHA: "tree-1"},
			}})
		case "/repos/owner/repo/git/trees/tree-1":
			json.NewEncoder(w).Encode(treeResponse{Tree: []TreeEntry{
				{Path: "worker.go", Type: "blob", SHA: "blob-2"},
			}})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer closeSrv()

	entries, err := c.Tree(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("Tree() failed: %v", err)
	}

	paths := make(map[string]string)
	for _, e := range entries {
		paths[e.Path] = e.Type
	}
	if paths["main.go"] != "blob" {
		t.Errorf("main.go missing from tree: %v", paths)
	}
	if paths["internal"] != "tree" {
		t.Errorf("internal dir missing from tree: %v", paths)
	}
	if paths["internal/worker.go"] != "blob" {
		t.Errorf("nested path not prefixed: %v", paths)
	}
}

func TestTree_MasterFallback(t *testing.T) {
	c, closeSrv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/owner/old/git/refs/heads/main":
			w.WriteHeader(http.StatusNotFound)
		case "/repos/owner/old/git/refs/heads/master":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"object": map[string]string{"sha": "root-sha"},
			})
		case "/repos/owner/old/git/trees/root-sha":
			json.NewEncoder(w).Encode(treeResponse{Tree: []TreeEntry{
				{Path: "README.md", Type: "blob", SHA: "b"},
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer closeSrv()

	entries, err := c.Tree(context.Background(), "owner", "old")
	if err != nil {
		t.Fatalf("Tree() with master default failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "README.md" {
		t.Errorf("entries = %v", entries)
	}
}

func TestIsBinaryPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"docs/logo.png", true},
		{"archive.tar", true},
		{"ARCHIVE.ZIP", true},
		{"main.go", false},
		{"README.md", false},
	}
	for _, tt := range tests {
		if got := IsBinaryPath(tt.path); got != tt.want {
			t.Errorf("IsBinaryPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileContent(t *testing.T) {
	c, closeSrv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/contents/main.go"):
			json.NewEncoder(w).Encode(contentResponse{
				Content:  base64.StdEncoding.EncodeToString([]byte("package main")),
				Encoding: "base64",
				Size:     12,
			})
		case strings.HasSuffix(r.URL.Path, "/contents/huge.txt"):
			json.NewEncoder(w).Encode(contentResponse{
				Content:  base64.StdEncoding.EncodeToString([]byte("x")),
				Encoding: "base64",
				Size:     maxFileSize + 1,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer closeSrv()

	got, err := c.FileContent(context.Background(), "owner", "repo", "main.go")
	if err != nil {
		t.Fatalf("FileContent() failed: %v", err)
	}
	if got != "package main" {
		t.Errorf("FileContent() = %q", got)
	}

	// Oversized files are skipped silently.
	got, err = c.FileContent(context.Background(), "owner", "repo", "huge.txt")
	if err != nil {
		t.Fatalf("FileContent() oversize failed: %v", err)
	}
	if got != "" {
		t.Errorf("oversized FileContent() = %q, want empty", got)
	}

	// Binary extensions never hit the API.
	got, err = c.FileContent(context.Background(), "owner", "repo", "logo.png")
	if err != nil || got != "" {
		t.Errorf("binary FileContent() = (%q, %v), want empty and nil", got, err)
	}
}
