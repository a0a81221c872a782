// Package cache exposes the result cache for inspection and cleanup.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ccomgroup/content-analyzer/internal/common"
	"github.com/ccomgroup/content-analyzer/pkg/caching"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func openCache(c *cli.Context) (*caching.Cache, error) {
	cache, err := caching.NewCache(c.String("cache-dir"), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return cache, nil
}

// LsAction lists cache entries as a table.
func LsAction(c *cli.Context) error {
	cache, err := openCache(c)
	if err != nil {
		return err
	}

	entries, err := cache.List()
	if err != nil {
		return fmt.Errorf("failed to list cache entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("Cache is empty")
		return nil
	}

	fmt.Printf("%-18s %-20s %-10s %s\n", "Key", "Cached", "Size", "URL")
	fmt.Println(strings.Repeat("-", 100))
	for _, e := range entries {
		key := e.Key
		if len(key) > 16 {
			key = key[:16]
		}
		fmt.Printf("%-18s %-20s %-10d %s\n",
			key,
			e.ModTime.Format("2006-01-02 15:04:05"),
			e.SizeBytes,
			e.URL,
		)
	}
	fmt.Printf("\nTotal: %d entries\n", len(entries))

	return nil
}

// ShowAction prints the full cached record for a URL.
func ShowAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("URL required\nUsage: content-analyzer cache show <url>")
	}
	rawURL := common.SanitizeURL(c.Args().First())

	cache, err := openCache(c)
	if err != nil {
		return err
	}

	record, ok := cache.Lookup(rawURL)
	if !ok {
		return fmt.Errorf("no cache entry for %s\n\nRun: content-analyzer process --urls \"%s\"", rawURL, rawURL)
	}

	var data []byte
	if strings.ToLower(c.String("format")) == "yaml" {
		data, err = yaml.Marshal(record)
	} else {
		data, err = json.MarshalIndent(record, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	fmt.Println(string(data))

	return nil
}

// ClearAction removes all cache entries.
func ClearAction(c *cli.Context) error {
	cache, err := openCache(c)
	if err != nil {
		return err
	}

	removed, err := cache.Clear()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Removed %d cache entries\n", removed)

	return nil
}
