package openlibrary

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) *SearchCache {
	t.Helper()
	cache, err := NewSearchCache(filepath.Join(t.TempDir(), "cache.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCacheMissOnEmptyDatabase(t *testing.T) {
	cache := newTestCache(t, 0)

	resp, ok, err := cache.Get("search:nothing:10:0")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, resp)
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t, 0)

	stored := &SearchResponse{
		NumFound: 1,
		Docs:     []Doc{{Key: "/works/OL1W", Title: "Cached Book", CoverID: 42}},
	}
	require.NoError(t, cache.Put("search:q:10:0", stored))

	got, ok, err := cache.Get("search:q:10:0")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, stored, got)
}

func TestCachePutReplacesEntry(t *testing.T) {
	cache := newTestCache(t, 0)

	require.NoError(t, cache.Put("k", &SearchResponse{NumFound: 1}))
	require.NoError(t, cache.Put("k", &SearchResponse{NumFound: 2}))

	got, ok, err := cache.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got.NumFound)
}

func TestCacheExpiredEntryIsMiss(t *testing.T) {
	cache := newTestCache(t, time.Nanosecond)

	require.NoError(t, cache.Put("k", &SearchResponse{NumFound: 1}))
	time.Sleep(10 * time.Millisecond)

	_, ok, err := cache.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}
