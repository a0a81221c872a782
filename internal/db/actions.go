// Package db exposes the processing history stored in the local database.
package db

import (
	"fmt"
	"strings"

	dbpkg "github.com/ccomgroup/content-analyzer/pkg/db"
	"github.com/urfave/cli/v2"
)

func open(c *cli.Context) (*dbpkg.DB, error) {
	if path := c.String("db"); path != "" {
		return dbpkg.OpenAt(path)
	}
	return dbpkg.Open()
}

// HistoryAction lists processed URLs with access and publish counts.
func HistoryAction(c *cli.Context) error {
	database, err := open(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	history, err := database.ListHistory(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(history) == 0 {
		fmt.Println("No processing history found")
		fmt.Println("\nRun 'content-analyzer process --urls \"...\"' first")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-10s %-8s %-6s %-6s %-9s %-20s %s\n",
		"ID", "Kind", "Accesses", "Hits", "Fails", "Publishes", "Last Accessed", "URL")
	fmt.Println(strings.Repeat("-", 120))

	for _, h := range history {
		lastAccessed := ""
		if !h.LastAccessed.IsZero() {
			lastAccessed = h.LastAccessed.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%-6d %-10s %-8d %-6d %-6d %-9d %-20s %s\n",
			h.URLID,
			h.Kind,
			h.Accesses,
			h.CacheHits,
			h.Failures,
			h.Publishes,
			lastAccessed,
			h.URL,
		)
	}

	fmt.Printf("\nTotal: %d URLs\n", len(history))
	fmt.Printf("\nTip: Use 'content-analyzer cache show <url>' to see the full record\n")

	return nil
}

// PublishesAction lists published notes, newest first.
func PublishesAction(c *cli.Context) error {
	database, err := open(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	entries, err := database.ListPublishes(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list publishes: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No publishes found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-40s %s\n", "ID", "Published", "Note", "URL")
	fmt.Println(strings.Repeat("-", 120))
	for _, e := range entries {
		note := e.NoteURL
		if note == "" {
			note = e.NoteID
		}
		fmt.Printf("%-6d %-20s %-40s %s\n", e.PublishID, e.PublishedAt, note, e.URL)
	}

	fmt.Printf("\nTotal: %d publishes\n", len(entries))

	return nil
}

// FindURLAction resolves a URL to its database ID.
func FindURLAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("URL required\nUsage: content-analyzer db find-url <url>\nExample: content-analyzer db find-url https://github.com/owner/repo")
	}

	database, err := open(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	url := c.Args().First()
	urlID, err := database.GetURLID(url)
	if err != nil {
		return fmt.Errorf("URL not found in database: %s\nNote: Only processed URLs are tracked", url)
	}

	fmt.Printf("[#%d] %s\n", urlID, url)
	return nil
}
