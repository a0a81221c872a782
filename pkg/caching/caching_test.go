package caching

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ccomgroup/content-analyzer/models"
)

func testRecord(url string) *models.Record {
	record := models.NewRecord(models.ContentRef{
		URL:  url,
		Kind: models.KindRepository,
	})
	record.Meta.Title = "owner/repo"
	record.Artifacts = models.Artifacts{
		Summary: "A summary.",
		Tags:    []string{"go", "cli"},
	}
	return record
}

func TestCache_StoreAndLookup(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	url := "https://github.com/urfave/cli"
	if _, ok := cache.Lookup(url); ok {
		t.Fatal("Lookup() hit on empty cache")
	}

	want := testRecord(url)
	if err := cache.Store(url, want); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	got, ok := cache.Lookup(url)
	if !ok {
		t.Fatal("Lookup() miss after Store()")
	}
	if got.ID != want.ID {
		t.Errorf("record ID = %q, want %q", got.ID, want.ID)
	}
	if got.Artifacts.Summary != want.Artifacts.Summary {
		t.Errorf("summary = %q, want %q", got.Artifacts.Summary, want.Artifacts.Summary)
	}
}

func TestCache_RepeatedLookupIsIdentical(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	url := "https://www.youtube.com/watch?v=abcdefghijk"
	if err := cache.Store(url, testRecord(url)); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	first, err := os.ReadFile(cache.EntryPath(url))
	if err != nil {
		t.Fatalf("failed to read entry: %v", err)
	}

	if _, ok := cache.Lookup(url); !ok {
		t.Fatal("Lookup() miss")
	}

	second, err := os.ReadFile(cache.EntryPath(url))
	if err != nil {
		t.Fatalf("failed to re-read entry: %v", err)
	}
	if string(first) != string(second) {
		t.Error("cache entry changed between lookups, want byte-identical")
	}
}

func TestCache_KeyIsRawURL(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	// No normalization: the trailing slash makes a distinct key.
	if cache.Key("https://github.com/a/b") == cache.Key("https://github.com/a/b/") {
		t.Error("trailing-slash URL produced the same key, want distinct keys")
	}

	want := "sha256 of the exact string"
	if got := cache.Key("x"); len(got) != 64 {
		t.Errorf("Key() length = %d, want 64 hex chars (%s)", len(got), want)
	}
}

func TestCache_Expiry(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir, time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	url := "https://github.com/urfave/cli"
	if err := cache.Store(url, testRecord(url)); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	// Backdate the entry past the TTL.
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(cache.EntryPath(url), old, old); err != nil {
		t.Fatalf("failed to backdate entry: %v", err)
	}

	if _, ok := cache.Lookup(url); ok {
		t.Error("Lookup() hit on expired entry, want miss")
	}
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir, 0)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	url := "https://github.com/urfave/cli"
	if err := os.WriteFile(cache.EntryPath(url), []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt entry: %v", err)
	}

	if _, ok := cache.Lookup(url); ok {
		t.Error("Lookup() hit on corrupt entry, want silent miss")
	}
}

func TestCache_ListAndClear(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir, 0)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	urls := []string{
		"https://github.com/urfave/cli",
		"https://www.youtube.com/watch?v=abcdefghijk",
	}
	for _, u := range urls {
		if err := cache.Store(u, testRecord(u)); err != nil {
			t.Fatalf("Store(%q) failed: %v", u, err)
		}
	}
	// Non-entry files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	entries, err := cache.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("List() = %d entries, want 2", len(entries))
	}

	removed, err := cache.Clear()
	if err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Clear() removed %d, want 2", removed)
	}

	entries, err = cache.List()
	if err != nil {
		t.Fatalf("List() after Clear() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List() after Clear() = %d entries, want 0", len(entries))
	}
}
