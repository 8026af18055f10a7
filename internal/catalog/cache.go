package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache memoizes catalog lookups per normalized query, backed by SQLite.
type Cache struct {
	db   *sql.DB
	path string
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS search_cache (
    query         TEXT PRIMARY KEY,
    catalog_id    INTEGER,
    year          INTEGER,
    display_title TEXT NOT NULL,
    cached_at     TEXT NOT NULL
)`

// OpenCache initializes or connects to the cache database.
func OpenCache(path string) (*Cache, error) {
	if path == "" {
		return nil, errors.New("cache path required")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(cacheSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}

	return &Cache{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached match for a normalized query, reporting whether one
// was present.
func (c *Cache) Get(ctx context.Context, query string) (Match, bool, error) {
	row := c.db.QueryRowContext(
		ctx,
		`SELECT catalog_id, year, display_title FROM search_cache WHERE query = ?`,
		query,
	)

	var (
		catalogID sql.NullInt64
		year      sql.NullInt64
		title     string
	)
	if err := row.Scan(&catalogID, &year, &title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Match{}, false, nil
		}
		return Match{}, false, fmt.Errorf("read cache entry: %w", err)
	}

	match := Match{DisplayTitle: title}
	if catalogID.Valid {
		id := catalogID.Int64
		match.CatalogID = &id
	}
	if year.Valid {
		y := int(year.Int64)
		match.Year = &y
	}
	return match, true, nil
}

// Put stores a match for a normalized query, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, query string, match Match) error {
	var catalogID, year any
	if match.CatalogID != nil {
		catalogID = *match.CatalogID
	}
	if match.Year != nil {
		year = *match.Year
	}
	_, err := c.db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO search_cache (query, catalog_id, year, display_title, cached_at)
         VALUES (?, ?, ?, ?, ?)`,
		query,
		catalogID,
		year,
		match.DisplayTitle,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}
