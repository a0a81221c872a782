package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// InsertURL inserts a classified URL, returning the url_id.
// If the URL already exists, returns the existing url_id.
func (db *DB) InsertURL(rawURL, kind string) (int64, error) {
	var existingID int64
	err := db.QueryRow("SELECT url_id FROM urls WHERE url = ?", rawURL).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing URL: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO urls (url, kind)
		VALUES (?, ?)
	`, rawURL, kind)
	if err != nil {
		return 0, fmt.Errorf("failed to insert URL: %w", err)
	}

	urlID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get URL ID: %w", err)
	}
	return urlID, nil
}

// GetURLID looks up the url_id for a URL.
func (db *DB) GetURLID(rawURL string) (int64, error) {
	var urlID int64
	err := db.QueryRow("SELECT url_id FROM urls WHERE url = ?", rawURL).Scan(&urlID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("URL not found: %s", rawURL)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up URL: %w", err)
	}
	return urlID, nil
}

// UpdateURLMetadata fills in the fetched metadata for a URL.
func (db *DB) UpdateURLMetadata(urlID int64, title, author, lang string) error {
	_, err := db.Exec(`
		UPDATE urls
		SET title = ?, author = ?, language = ?, updated_at = CURRENT_TIMESTAMP
		WHERE url_id = ?
	`, title, author, lang, urlID)
	if err != nil {
		return fmt.Errorf("failed to update URL metadata: %w", err)
	}
	return nil
}

// RecordAccess records a processing attempt in url_accesses.
func (db *DB) RecordAccess(urlID int64, cacheHit bool, errorType string, success bool) error {
	_, err := db.Exec(`
		INSERT INTO url_accesses (url_id, cache_hit, error_type, success)
		VALUES (?, ?, ?, ?)
	`, urlID, cacheHit, errorType, success)
	if err != nil {
		return fmt.Errorf("failed to record access: %w", err)
	}
	return nil
}

// RecordPublish records one successful save-weblink call.
func (db *DB) RecordPublish(urlID int64, noteID, noteURL string) error {
	_, err := db.Exec(`
		INSERT INTO publishes (url_id, note_id, note_url)
		VALUES (?, ?, ?)
	`, urlID, noteID, noteURL)
	if err != nil {
		return fmt.Errorf("failed to record publish: %w", err)
	}
	return nil
}

// URLHistory is one row of the history listing.
type URLHistory struct {
	URLID        int64
	URL          string
	Kind         string
	Title        string
	Accesses     int
	CacheHits    int
	Failures     int
	Publishes    int
	LastAccessed time.Time
}

// ListHistory returns processed URLs with access and publish counts,
// newest first.
func (db *DB) ListHistory(limit int) ([]URLHistory, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT u.url_id, u.url, u.kind, COALESCE(u.title, ''),
		       COUNT(a.access_id),
		       COALESCE(SUM(CASE WHEN a.cache_hit THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN NOT a.success THEN 1 ELSE 0 END), 0),
		       (SELECT COUNT(*) FROM publishes p WHERE p.url_id = u.url_id),
		       COALESCE(MAX(a.accessed_at), u.created_at)
		FROM urls u
		LEFT JOIN url_accesses a ON a.url_id = u.url_id
		GROUP BY u.url_id
		ORDER BY MAX(a.accessed_at) DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var history []URLHistory
	for rows.Next() {
		var h URLHistory
		var lastAccessed string
		if err := rows.Scan(&h.URLID, &h.URL, &h.Kind, &h.Title,
			&h.Accesses, &h.CacheHits, &h.Failures, &h.Publishes, &lastAccessed); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", lastAccessed); err == nil {
			h.LastAccessed = t
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// PublishEntry is one row of the publish listing.
type PublishEntry struct {
	PublishID   int64
	URL         string
	NoteID      string
	NoteURL     string
	PublishedAt string
}

// ListPublishes returns publish history, newest first.
func (db *DB) ListPublishes(limit int) ([]PublishEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT p.publish_id, u.url, COALESCE(p.note_id, ''), COALESCE(p.note_url, ''), p.published_at
		FROM publishes p
		JOIN urls u ON u.url_id = p.url_id
		ORDER BY p.published_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list publishes: %w", err)
	}
	defer rows.Close()

	var entries []PublishEntry
	for rows.Next() {
		var e PublishEntry
		if err := rows.Scan(&e.PublishID, &e.URL, &e.NoteID, &e.NoteURL, &e.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan publish row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
