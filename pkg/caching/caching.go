// Package caching provides the one-file-per-URL result cache.
package caching

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ccomgroup/content-analyzer/internal/common"
	"github.com/ccomgroup/content-analyzer/models"
)

// Cache is a simple file-based cache keyed by a hash of the raw URL string.
// No normalization: "https://x/" and "https://x" are distinct keys.
type Cache struct {
	path string
	ttl  time.Duration // 0 means entries never expire
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// Key generates a SHA256 hash of the URL to use as a filename.
func (c *Cache) Key(url string) string {
	return common.ContentHash([]byte(url))
}

// EntryPath returns the file path backing a URL's cache entry.
func (c *Cache) EntryPath(url string) string {
	return filepath.Join(c.path, c.Key(url)+".json")
}

// Lookup retrieves a record from the cache. It returns the record and true
// on a hit. Absent, expired, unreadable, and corrupt entries are all
// misses; corruption is never surfaced to the caller.
func (c *Cache) Lookup(url string) (*models.Record, bool) {
	filePath := c.EntryPath(url)

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, false // Cache miss
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, false // Cache miss (expired)
	}

	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, false // Cache miss (read error)
	}

	var record models.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false // Cache miss (corrupt entry)
	}
	return &record, true
}

// Store writes a record to the cache. Concurrent writers to the same key
// race; last write wins.
func (c *Cache) Store(url string, record *models.Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := os.WriteFile(c.EntryPath(url), data, 0600); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Entry describes one cache file for listings.
type Entry struct {
	Key       string    `json:"key" yaml:"key"`
	URL       string    `json:"url" yaml:"url"`
	SizeBytes int64     `json:"size_bytes" yaml:"size_bytes"`
	ModTime   time.Time `json:"mod_time" yaml:"mod_time"`
}

// List returns all readable entries in the cache directory. Unreadable or
// corrupt files are skipped.
func (c *Cache) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != ".json" {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.path, de.Name()))
		if err != nil {
			continue
		}
		var record models.Record
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		entries = append(entries, Entry{
			Key:       de.Name()[:len(de.Name())-len(".json")],
			URL:       record.Ref.URL,
			SizeBytes: info.Size(),
			ModTime:   info.ModTime(),
		})
	}
	return entries, nil
}

// Clear removes every entry file. The directory itself is kept.
func (c *Cache) Clear() (int, error) {
	dirEntries, err := os.ReadDir(c.path)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}
	removed := 0
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(c.path, de.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove cache entry: %w", err)
		}
		removed++
	}
	return removed, nil
}
