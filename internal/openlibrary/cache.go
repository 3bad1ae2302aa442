package openlibrary

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultCacheTTL is the default time-to-live for cached search responses.
// Search rankings drift, so this is much shorter than a record cache.
const DefaultCacheTTL = 24 * time.Hour

// searchCacheSchema stores raw response JSON keyed by the search window.
const searchCacheSchema = `
CREATE TABLE IF NOT EXISTS openlibrary_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_openlibrary_cached_at ON openlibrary_cache(cached_at);
`

// SearchCache is a SQLite-backed cache for Open Library search responses.
type SearchCache struct {
	db  *sql.DB
	mu  sync.RWMutex
	ttl time.Duration
}

// NewSearchCache opens (and initializes if needed) a cache database at the
// given path. A ttl of zero selects DefaultCacheTTL.
func NewSearchCache(dbPath string, ttl time.Duration) (*SearchCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	if _, err := db.Exec(searchCacheSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create cache table: %w", err), closeErr)
	}

	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &SearchCache{db: db, ttl: ttl}, nil
}

// Get returns the cached response for key, reporting whether a fresh entry
// existed. Expired entries count as misses.
func (c *SearchCache) Get(key string) (*SearchResponse, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var data string
	var cachedAt time.Time
	err := c.db.QueryRow(
		"SELECT data, cached_at FROM openlibrary_cache WHERE cache_key = ?", key,
	).Scan(&data, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup failed: %w", err)
	}

	if time.Since(cachedAt) > c.ttl {
		return nil, false, nil
	}

	var resp SearchResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached response: %w", err)
	}
	return &resp, true, nil
}

// Put stores a response under key, replacing any previous entry.
func (c *SearchCache) Put(key string, resp *SearchResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response for cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO openlibrary_cache (cache_key, data, cached_at) VALUES (?, ?, ?)",
		key, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Close closes the cache database connection.
func (c *SearchCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
