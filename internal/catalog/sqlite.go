package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS catalog_items (
	lenny_id INTEGER PRIMARY KEY,
	ol_key TEXT UNIQUE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_catalog_ol_key ON catalog_items(ol_key);
`

// SQLiteStore implements the Store interface on a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLiteStore instance.
func NewSQLiteStore(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		dbPath: dbPath,
	}
}

// Connect opens the database and creates the schema if needed.
func (s *SQLiteStore) Connect() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(catalogSchema); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}

	s.db = db
	return nil
}

// Upsert inserts or replaces a catalog item.
func (s *SQLiteStore) Upsert(item Item) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO catalog_items (lenny_id, ol_key) VALUES (?, ?)",
		item.LennyID, item.OLKey,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert catalog item: %w", err)
	}
	return nil
}

// IDsForKeys returns the Lenny identifiers for the given Open Library keys.
func (s *SQLiteStore) IDsForKeys(keys []string) (map[string]int64, error) {
	out := make(map[string]int64, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", ")
	args := make([]any, len(keys))
	for i, key := range keys {
		args[i] = key
	}

	rows, err := s.db.Query(
		fmt.Sprintf("SELECT ol_key, lenny_id FROM catalog_items WHERE ol_key IN (%s)", placeholders),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key string
		var id int64
		if err := rows.Scan(&key, &id); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		out[key] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog rows: %w", err)
	}

	return out, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
