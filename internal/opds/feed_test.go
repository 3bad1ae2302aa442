package opds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastOffset(t *testing.T) {
	testCases := []struct {
		name         string
		total, limit int
		expected     int
	}{
		{name: "single page", total: 5, limit: 10, expected: 0},
		{name: "exact fit", total: 10, limit: 10, expected: 0},
		{name: "partial last page", total: 25, limit: 10, expected: 20},
		{name: "full last page", total: 30, limit: 10, expected: 20},
		{name: "one over", total: 11, limit: 10, expected: 10},
		{name: "zero total", total: 0, limit: 10, expected: 0},
		{name: "zero limit", total: 25, limit: 0, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, LastOffset(tc.total, tc.limit))
		})
	}
}

func TestFeedSerializesWithOPDSFieldNames(t *testing.T) {
	feed := Feed{
		Metadata: FeedMetadata{Title: "catalog", TotalItems: 1, ItemsPerPage: 10},
		Links: []Link{
			{Rel: RelSelf, Href: "/v1/api/opds?offset=0&limit=10", Type: TypeFeed},
		},
		Publications: []Publication{
			{
				Metadata: PublicationMetadata{Title: "A Book"},
				Links:    []Link{{Rel: RelAcquisitionRead, Href: "/v1/api/items/1/read", Type: TypeJSON}},
			},
		},
	}

	raw, err := json.Marshal(feed)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "metadata")
	assert.Contains(t, doc, "links")
	assert.Contains(t, doc, "publications")

	var links []map[string]string
	require.NoError(t, json.Unmarshal(doc["links"], &links))
	require.Len(t, links, 1)
	assert.Equal(t, "self", links[0]["rel"])
	assert.Equal(t, "application/opds+json", links[0]["type"])
}

func TestPublicationOmitsAbsentOptionalFields(t *testing.T) {
	pub := Publication{
		Metadata: PublicationMetadata{Title: "No Extras"},
		Links:    []Link{{Rel: RelAcquisitionRead, Href: "/v1/api/items/2/read"}},
	}

	raw, err := json.Marshal(pub)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "images")
	assert.NotContains(t, string(raw), "author")
	assert.NotContains(t, string(raw), "identifier")
}
