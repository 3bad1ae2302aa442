package lenny

import (
	"fmt"
	"strings"

	"github.com/ronibhakta1/opds2-lenny/internal/opds"
)

const (
	// FeedTitle is the title of every feed this adapter produces.
	FeedTitle = "Lenny Local Catalog"

	feedPath = "/v1/api/opds"
)

// AssembleFeed wraps enriched records and pagination parameters into an
// OPDS 2.0 feed envelope. It trusts the caller-provided total but rejects
// parameter combinations no correct pager can produce; it never clips or
// pads the record sequence. Identical inputs produce identical envelopes.
func AssembleFeed(records []Record, total, limit, offset int, baseURL string) (*opds.Feed, error) {
	if limit < 0 || offset < 0 {
		return nil, &opds.FeedConsistencyError{
			Reason: fmt.Sprintf("negative pagination parameters (limit=%d, offset=%d)", limit, offset),
		}
	}
	if limit > 0 && len(records) > limit {
		return nil, &opds.FeedConsistencyError{
			Reason: fmt.Sprintf("%d records exceed page limit %d", len(records), limit),
		}
	}

	publications := make([]opds.Publication, 0, len(records))
	for _, rec := range records {
		publications = append(publications, rec.Publication())
	}

	return &opds.Feed{
		Metadata: opds.FeedMetadata{
			Title:         FeedTitle,
			TotalItems:    total,
			ItemsPerPage:  limit,
			CurrentOffset: offset,
		},
		Links:        navigationLinks(total, limit, offset, baseURL),
		Publications: publications,
	}, nil
}

func navigationLinks(total, limit, offset int, baseURL string) []opds.Link {
	base := strings.TrimRight(baseURL, "/")
	href := func(offset int) string {
		return fmt.Sprintf("%s%s?offset=%d&limit=%d", base, feedPath, offset, limit)
	}

	links := []opds.Link{
		{Rel: opds.RelSelf, Href: href(offset), Type: opds.TypeFeed},
		{Rel: opds.RelFirst, Href: href(0), Type: opds.TypeFeed},
		{Rel: opds.RelLast, Href: href(opds.LastOffset(total, limit)), Type: opds.TypeFeed},
	}

	if offset+limit < total {
		links = append(links, opds.Link{Rel: opds.RelNext, Href: href(offset + limit), Type: opds.TypeFeed})
	}
	if offset > 0 {
		prev := max(offset-limit, 0)
		links = append(links, opds.Link{Rel: opds.RelPrevious, Href: href(prev), Type: opds.TypeFeed})
	}

	return links
}
