// Package lenny adapts Open Library search results into OPDS 2.0
// publication records and feeds for the Lenny hosting platform. Records
// carry borrow/return links for encrypted content and a read link for
// open-access content, all pointing at Lenny's item API.
package lenny

import (
	"fmt"
	"strings"

	"github.com/ronibhakta1/opds2-lenny/internal/opds"
	"github.com/ronibhakta1/opds2-lenny/internal/openlibrary"
)

const (
	// SchemaTypeBook marks every publication as a schema.org Book.
	SchemaTypeBook = "http://schema.org/Book"

	itemsPath        = "/v1/api/items"
	coverURLTemplate = "https://covers.openlibrary.org/b/id/%d-L.jpg"
)

// Record is an Open Library work correlated with a Lenny catalog item.
// It is built once by EnrichRecord and not mutated afterwards.
type Record struct {
	LennyID          int64
	Title            string
	Subtitle         string
	Authors          []string
	Key              string
	FirstPublishYear int
	Languages        []string
	Encrypted        bool

	// CoverLink is nil when the upstream record has no cover.
	CoverLink        *opds.Link
	AcquisitionLinks []opds.Link
}

// EnrichRecord builds a Record from an upstream work and its correlated
// Lenny identifier. The encrypted flag selects the acquisition links:
// borrow+return for encrypted content, read for open access. A zero or
// negative lennyID means correlation never happened and is rejected.
func EnrichRecord(doc openlibrary.Doc, lennyID int64, encrypted bool, baseURL string) (Record, error) {
	if lennyID <= 0 {
		return Record{}, &EnrichmentError{Key: doc.Key}
	}

	rec := Record{
		LennyID:          lennyID,
		Title:            doc.Title,
		Subtitle:         doc.Subtitle,
		Authors:          doc.AuthorName,
		Key:              doc.Key,
		FirstPublishYear: doc.FirstPublishYear,
		Languages:        doc.Language,
		Encrypted:        encrypted,
		AcquisitionLinks: acquisitionLinks(lennyID, encrypted, baseURL),
	}

	if doc.CoverID > 0 {
		rec.CoverLink = &opds.Link{
			Rel:  opds.RelImage,
			Href: fmt.Sprintf(coverURLTemplate, doc.CoverID),
			Type: opds.TypeJPEG,
		}
	}

	return rec, nil
}

// itemURI builds the base URI for a Lenny item, joining baseURL with
// exactly one separator.
func itemURI(baseURL string, lennyID int64) string {
	return fmt.Sprintf("%s%s/%d", strings.TrimRight(baseURL, "/"), itemsPath, lennyID)
}

func acquisitionLinks(lennyID int64, encrypted bool, baseURL string) []opds.Link {
	uri := itemURI(baseURL, lennyID)

	if encrypted {
		return []opds.Link{
			{Rel: opds.RelAcquisitionBorrow, Href: uri + "/borrow", Type: opds.TypeJSON},
			{Rel: opds.RelAcquisitionReturn, Href: uri + "/return", Type: opds.TypeJSON},
		}
	}

	return []opds.Link{
		{Rel: opds.RelAcquisitionRead, Href: uri + "/read", Type: opds.TypeJSON},
	}
}

// Publication projects the record into its OPDS 2.0 feed entry.
func (r Record) Publication() opds.Publication {
	pub := opds.Publication{
		Metadata: opds.PublicationMetadata{
			Type:       SchemaTypeBook,
			Title:      r.Title,
			Author:     r.Authors,
			Identifier: r.Key,
			Published:  r.FirstPublishYear,
			Language:   r.Languages,
		},
		Links: r.AcquisitionLinks,
	}

	if r.CoverLink != nil {
		pub.Images = []opds.Link{*r.CoverLink}
	}

	return pub
}
