package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, store.Connect())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUpsertAndLookup(t *testing.T) {
	store := newTestStore(t)

	items := []Item{
		{LennyID: 40001, OLKey: "/works/OL1W"},
		{LennyID: 40002, OLKey: "/works/OL2W"},
		{LennyID: 40003, OLKey: "/works/OL3W"},
	}
	for _, item := range items {
		require.NoError(t, store.Upsert(item))
	}

	ids, err := store.IDsForKeys([]string{"/works/OL1W", "/works/OL2W", "/works/OL3W"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"/works/OL1W": 40001,
		"/works/OL2W": 40002,
		"/works/OL3W": 40003,
	}, ids)
}

func TestLookupUnknownKeysAreAbsent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert(Item{LennyID: 1, OLKey: "/works/OL1W"}))

	ids, err := store.IDsForKeys([]string{"/works/OL1W", "/works/OL999W"})
	require.NoError(t, err)
	assert.Len(t, ids, 1)
	_, ok := ids["/works/OL999W"]
	assert.False(t, ok)
}

func TestLookupEmptyKeys(t *testing.T) {
	store := newTestStore(t)

	ids, err := store.IDsForKeys(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestUpsertReplacesExistingKey(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Upsert(Item{LennyID: 1, OLKey: "/works/OL1W"}))
	require.NoError(t, store.Upsert(Item{LennyID: 2, OLKey: "/works/OL1W"}))

	ids, err := store.IDsForKeys([]string{"/works/OL1W"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), ids["/works/OL1W"])
}
