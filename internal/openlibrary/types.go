package openlibrary

// Doc is a single work in an Open Library search response. Only the
// fields this adapter consumes are decoded.
type Doc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverID          int      `json:"cover_i"`
	ISBN             []string `json:"isbn"`
	Language         []string `json:"language"`
}

// SearchResponse is the envelope returned by search.json.
type SearchResponse struct {
	NumFound      int   `json:"numFound"`
	Start         int   `json:"start"`
	NumFoundExact bool  `json:"numFoundExact"`
	Docs          []Doc `json:"docs"`
}
