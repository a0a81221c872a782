package db

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := OpenAt(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestInsertURL_Idempotent(t *testing.T) {
	database := setupTestDB(t)

	first, err := database.InsertURL("https://github.com/owner/widget", "repository")
	if err != nil {
		t.Fatalf("InsertURL() failed: %v", err)
	}
	second, err := database.InsertURL("https://github.com/owner/widget", "repository")
	if err != nil {
		t.Fatalf("InsertURL() second call failed: %v", err)
	}
	if first != second {
		t.Errorf("InsertURL() returned %d then %d, want the same ID", first, second)
	}

	other, err := database.InsertURL("https://github.com/owner/widget/", "repository")
	if err != nil {
		t.Fatalf("InsertURL() failed: %v", err)
	}
	if other == first {
		t.Error("trailing-slash URL reused the ID of the bare URL")
	}
}

func TestGetURLID(t *testing.T) {
	database := setupTestDB(t)

	want, err := database.InsertURL("https://www.youtube.com/watch?v=abc", "video")
	if err != nil {
		t.Fatalf("InsertURL() failed: %v", err)
	}

	got, err := database.GetURLID("https://www.youtube.com/watch?v=abc")
	if err != nil {
		t.Fatalf("GetURLID() failed: %v", err)
	}
	if got != want {
		t.Errorf("GetURLID() = %d, want %d", got, want)
	}

	if _, err := database.GetURLID("https://example.com/unknown"); err == nil {
		t.Error("GetURLID() succeeded for an unknown URL, want error")
	}
}

func TestUpdateURLMetadata(t *testing.T) {
	database := setupTestDB(t)

	urlID, err := database.InsertURL("https://github.com/owner/widget", "repository")
	if err != nil {
		t.Fatalf("InsertURL() failed: %v", err)
	}
	if err := database.UpdateURLMetadata(urlID, "owner/widget", "owner", "en"); err != nil {
		t.Fatalf("UpdateURLMetadata() failed: %v", err)
	}

	var title, author, lang string
	err = database.QueryRow("SELECT title, author, language FROM urls WHERE url_id = ?", urlID).
		Scan(&title, &author, &lang)
	if err != nil {
		t.Fatalf("failed to read back metadata: %v", err)
	}
	if title != "owner/widget" || author != "owner" || lang != "en" {
		t.Errorf("metadata = %q/%q/%q", title, author, lang)
	}
}

func TestListHistory(t *testing.T) {
	database := setupTestDB(t)

	urlID, err := database.InsertURL("https://github.com/owner/widget", "repository")
	if err != nil {
		t.Fatalf("InsertURL() failed: %v", err)
	}

	// Two fresh fetches, one cache hit, one failure.
	if err := database.RecordAccess(urlID, false, "", true); err != nil {
		t.Fatalf("RecordAccess() failed: %v", err)
	}
	if err := database.RecordAccess(urlID, false, "", true); err != nil {
		t.Fatalf("RecordAccess() failed: %v", err)
	}
	if err := database.RecordAccess(urlID, true, "", true); err != nil {
		t.Fatalf("RecordAccess() failed: %v", err)
	}
	if err := database.RecordAccess(urlID, false, "fetch_error", false); err != nil {
		t.Fatalf("RecordAccess() failed: %v", err)
	}
	if err := database.RecordPublish(urlID, "note-1", "https://app.capacities.io/note-1"); err != nil {
		t.Fatalf("RecordPublish() failed: %v", err)
	}

	history, err := database.ListHistory(10)
	if err != nil {
		t.Fatalf("ListHistory() failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("ListHistory() returned %d rows, want 1", len(history))
	}

	h := history[0]
	if h.URL != "https://github.com/owner/widget" {
		t.Errorf("URL = %q", h.URL)
	}
	if h.Kind != "repository" {
		t.Errorf("Kind = %q", h.Kind)
	}
	if h.Accesses != 4 {
		t.Errorf("Accesses = %d, want 4", h.Accesses)
	}
	if h.CacheHits != 1 {
		t.Errorf("CacheHits = %d, want 1", h.CacheHits)
	}
	if h.Failures != 1 {
		t.Errorf("Failures = %d, want 1", h.Failures)
	}
	if h.Publishes != 1 {
		t.Errorf("Publishes = %d, want 1", h.Publishes)
	}
	if h.LastAccessed.IsZero() {
		t.Error("LastAccessed is zero")
	}
}

func TestListPublishes(t *testing.T) {
	database := setupTestDB(t)

	urlID, err := database.InsertURL("https://github.com/owner/widget", "repository")
	if err != nil {
		t.Fatalf("InsertURL() failed: %v", err)
	}

	// Republishing appends rows rather than replacing the first note.
	if err := database.RecordPublish(urlID, "note-1", "https://app.capacities.io/note-1"); err != nil {
		t.Fatalf("RecordPublish() failed: %v", err)
	}
	if err := database.RecordPublish(urlID, "note-2", "https://app.capacities.io/note-2"); err != nil {
		t.Fatalf("RecordPublish() failed: %v", err)
	}

	entries, err := database.ListPublishes(10)
	if err != nil {
		t.Fatalf("ListPublishes() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListPublishes() returned %d rows, want 2", len(entries))
	}
	for _, e := range entries {
		if e.URL != "https://github.com/owner/widget" {
			t.Errorf("URL = %q", e.URL)
		}
		if e.NoteID == "" || e.PublishedAt == "" {
			t.Errorf("incomplete entry: %+v", e)
		}
	}
}

func TestOpenAt_SchemaAutoInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")

	database, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt() failed: %v", err)
	}
	database.Close()

	// Reopening an initialized database must not fail or wipe data.
	database, err = OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt() reopen failed: %v", err)
	}
	defer database.Close()

	if got := database.Path(); got != path {
		t.Errorf("Path() = %q, want %q", got, path)
	}
}
