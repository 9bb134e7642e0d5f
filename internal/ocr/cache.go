package ocr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS ocr_cache (
	document_id TEXT PRIMARY KEY,
	text        TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);`

// Cache stores OCR output keyed by document identity, so repeated runs never
// re-pay recognition cost. Queries before population return a clean miss;
// writes are idempotent upserts.
type Cache struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenCache opens (creating if needed) the SQLite-backed cache at path.
func OpenCache(path string, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	// SQLite is single-writer; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("cache pragma: %w", err)
		}
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache schema: %w", err)
	}

	logger.Debug("ocr.cache.open", "path", path)
	return &Cache{db: db, logger: logger}, nil
}

// Get returns the cached text for a document, with a boolean hit flag.
func (c *Cache) Get(ctx context.Context, documentID string) (string, bool, error) {
	var text string
	err := c.db.QueryRowContext(ctx,
		`SELECT text FROM ocr_cache WHERE document_id = ?`, documentID,
	).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return text, true, nil
}

// Put stores (or overwrites) the OCR text for a document. Re-deriving and
// overwriting the same entry is safe.
func (c *Cache) Put(ctx context.Context, documentID, text string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO ocr_cache (document_id, text, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			text = excluded.text,
			updated_at = excluded.updated_at`,
		documentID, text, now, now,
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
