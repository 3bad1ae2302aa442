// Package catalog stores the mapping between Open Library work keys and
// Lenny's local item identifiers. It is the source of truth the HTTP
// server consults when correlating search results; the feed core itself
// never touches it.
package catalog

// Item is one row of Lenny's local catalog.
type Item struct {
	LennyID int64
	OLKey   string
}

// Store defines the interface for local catalog storage.
type Store interface {
	// Connect establishes a connection to the catalog store and ensures
	// the schema exists.
	Connect() error

	// Upsert inserts or replaces a catalog item.
	Upsert(item Item) error

	// IDsForKeys returns the Lenny identifiers for the given Open Library
	// keys. Keys with no catalog entry are absent from the result.
	IDsForKeys(keys []string) (map[string]int64, error)

	// Close closes the connection to the catalog store.
	Close() error
}
