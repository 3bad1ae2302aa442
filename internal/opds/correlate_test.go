package opds

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelateRepresentationsAgree(t *testing.T) {
	want := []int64{40001, 40002, 40003}

	sources := map[string]IDSource{
		"slice": IDSlice{40001, 40002, 40003},
		"map":   IDMap{0: 40001, 1: 40002, 2: 40003},
		"seq": IDSeq(func(yield func(int64) bool) {
			for _, id := range want {
				if !yield(id) {
					return
				}
			}
		}),
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			got, err := Correlate(src, 3)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestCorrelateTakesPrefixOfLongerSource(t *testing.T) {
	got, err := Correlate(IDSlice{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestCorrelateTooFewIdentifiers(t *testing.T) {
	_, err := Correlate(IDSlice{7, 8}, 3)
	require.Error(t, err)

	var ce *CorrelationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Provided)
	assert.Equal(t, 3, ce.Needed)
	assert.True(t, IsCorrelationError(err))
}

func TestCorrelateNilSource(t *testing.T) {
	got, err := Correlate(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Correlate(nil, 1)
	assert.True(t, IsCorrelationError(err))
}

func TestCorrelateMapStopsAtPositionGap(t *testing.T) {
	// Position 1 is missing, so only position 0 resolves.
	src := IDMap{0: 11, 2: 33}
	_, err := Correlate(src, 2)

	var ce *CorrelationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Provided)
}

func TestCorrelateDoesNotAliasCallerSlice(t *testing.T) {
	orig := IDSlice{1, 2, 3}
	got, err := Correlate(orig, 3)
	require.NoError(t, err)

	got[0] = 99
	assert.True(t, slices.Equal([]int64{1, 2, 3}, []int64(orig)))
}
