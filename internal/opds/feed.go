// Package opds models OPDS 2.0 acquisition feed documents and the
// positional correlation of upstream search results with local catalog
// identifiers. All types serialize directly to OPDS 2.0 JSON; the field
// names here are the wire contract.
package opds

// Link relations and media types from the OPDS 2.0 acquisition feed
// profile and Library Simplified extensions.
const (
	RelSelf     = "self"
	RelFirst    = "first"
	RelLast     = "last"
	RelNext     = "next"
	RelPrevious = "previous"

	RelAcquisitionBorrow = "http://opds-spec.org/acquisition/borrow"
	RelAcquisitionReturn = "http://librarysimplified.org/terms/return"
	RelAcquisitionRead   = "http://opds-spec.org/acquisition/open-access"
	RelImage             = "http://opds-spec.org/image"

	TypeFeed = "application/opds+json"
	TypeJSON = "application/json"
	TypeJPEG = "image/jpeg"
)

// Link is a single OPDS link object.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
	Type string `json:"type,omitempty"`
}

// FeedMetadata describes the feed as a whole, including pagination state.
type FeedMetadata struct {
	Title         string `json:"title"`
	TotalItems    int    `json:"totalItems"`
	ItemsPerPage  int    `json:"itemsPerPage"`
	CurrentOffset int    `json:"currentOffset"`
}

// PublicationMetadata holds the bibliographic fields of a single
// publication. Optional fields are omitted entirely when absent.
type PublicationMetadata struct {
	Type       string   `json:"@type,omitempty"`
	Title      string   `json:"title"`
	Author     []string `json:"author,omitempty"`
	Identifier string   `json:"identifier,omitempty"`
	Published  int      `json:"published,omitempty"`
	Language   []string `json:"language,omitempty"`
}

// Publication is one entry in the feed's publications list.
type Publication struct {
	Metadata PublicationMetadata `json:"metadata"`
	Links    []Link              `json:"links"`
	Images   []Link              `json:"images,omitempty"`
}

// Feed is an OPDS 2.0 acquisition feed envelope.
type Feed struct {
	Metadata     FeedMetadata  `json:"metadata"`
	Links        []Link        `json:"links"`
	Publications []Publication `json:"publications"`
}

// LastOffset returns the offset of the final page: the largest multiple of
// limit strictly below total, or 0 when everything fits on one page.
func LastOffset(total, limit int) int {
	if limit <= 0 || total <= limit {
		return 0
	}
	return ((total - 1) / limit) * limit
}
