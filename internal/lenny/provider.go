package lenny

import (
	"context"
	"fmt"

	"github.com/ronibhakta1/opds2-lenny/internal/opds"
	"github.com/ronibhakta1/opds2-lenny/internal/openlibrary"
)

// Searcher executes the upstream metadata query. The production
// implementation is openlibrary.Client; tests substitute a stub.
type Searcher interface {
	Search(ctx context.Context, query string, limit, offset int) (*openlibrary.SearchResponse, error)
}

// Provider pairs an upstream searcher with the correlate/enrich pipeline.
// It holds no mutable state and is safe for concurrent use.
type Provider struct {
	searcher Searcher
}

// NewProvider creates a Provider backed by the given searcher.
func NewProvider(searcher Searcher) *Provider {
	return &Provider{searcher: searcher}
}

// Search runs the upstream query and correlates each result positionally
// with the supplied identifiers. numFound is caller-supplied metadata: it
// becomes the total only when the upstream response does not report one.
func (p *Provider) Search(ctx context.Context, query string, numFound, limit, offset int, ids opds.IDSource, encrypted bool, baseURL string) ([]Record, int, error) {
	resp, err := p.searcher.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("upstream search failed: %w", err)
	}

	assigned, err := opds.Correlate(ids, len(resp.Docs))
	if err != nil {
		return nil, 0, err
	}

	records, err := enrichAll(resp.Docs, assigned, encrypted, baseURL)
	if err != nil {
		return nil, 0, err
	}

	return records, totalOf(resp, numFound), nil
}

// SearchByKey is like Search but assigns identifiers by each work's Open
// Library key instead of by position. A work whose key is missing from the
// map surfaces as an EnrichmentError; no partial result is returned.
func (p *Provider) SearchByKey(ctx context.Context, query string, numFound, limit, offset int, keyed map[string]int64, encrypted bool, baseURL string) ([]Record, int, error) {
	resp, err := p.searcher.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("upstream search failed: %w", err)
	}

	assigned := make([]int64, len(resp.Docs))
	for i, doc := range resp.Docs {
		assigned[i] = keyed[doc.Key]
	}

	records, err := enrichAll(resp.Docs, assigned, encrypted, baseURL)
	if err != nil {
		return nil, 0, err
	}

	return records, totalOf(resp, numFound), nil
}

// Adapt applies the correlate/enrich pipeline to an already-fetched
// response. The HTTP server uses this after looking identifiers up in the
// local catalog.
func (p *Provider) Adapt(resp *openlibrary.SearchResponse, numFound int, ids opds.IDSource, encrypted bool, baseURL string) ([]Record, int, error) {
	assigned, err := opds.Correlate(ids, len(resp.Docs))
	if err != nil {
		return nil, 0, err
	}

	records, err := enrichAll(resp.Docs, assigned, encrypted, baseURL)
	if err != nil {
		return nil, 0, err
	}

	return records, totalOf(resp, numFound), nil
}

func enrichAll(docs []openlibrary.Doc, ids []int64, encrypted bool, baseURL string) ([]Record, error) {
	records := make([]Record, 0, len(docs))
	for i, doc := range docs {
		rec, err := EnrichRecord(doc, ids[i], encrypted, baseURL)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func totalOf(resp *openlibrary.SearchResponse, numFound int) int {
	if resp.NumFound > 0 {
		return resp.NumFound
	}
	return numFound
}
