package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- URLs table: every classified content reference seen by the pipeline
CREATE TABLE IF NOT EXISTS urls (
    url_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL,              -- video | repository
    title TEXT,
    author TEXT,
    language TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_urls_kind ON urls(kind);

-- URL accesses: every processing attempt tracked
CREATE TABLE IF NOT EXISTS url_accesses (
    access_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url_id INTEGER NOT NULL,
    accessed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    cache_hit BOOLEAN NOT NULL DEFAULT 0,
    error_type TEXT,
    success BOOLEAN NOT NULL,
    FOREIGN KEY (url_id) REFERENCES urls(url_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_accesses_url ON url_accesses(url_id);
CREATE INDEX IF NOT EXISTS idx_accesses_time ON url_accesses(accessed_at);
CREATE INDEX IF NOT EXISTS idx_accesses_success ON url_accesses(success);

-- Publishes: every save-weblink call that succeeded. Publishing the same
-- URL again adds another row; the external service receives a new note.
CREATE TABLE IF NOT EXISTS publishes (
    publish_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url_id INTEGER NOT NULL,
    note_id TEXT,
    note_url TEXT,
    published_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (url_id) REFERENCES urls(url_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_publishes_url ON publishes(url_id);
`
