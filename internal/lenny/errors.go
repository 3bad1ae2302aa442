package lenny

import (
	"errors"
	"fmt"
)

// EnrichmentError reports a record that reached enrichment without a
// resolved Lenny identifier. This is an upstream contract violation, so it
// fails the whole call rather than producing a partial feed.
type EnrichmentError struct {
	Key string
}

func (e *EnrichmentError) Error() string {
	if e.Key == "" {
		return "enrich: record has no Lenny identifier"
	}
	return fmt.Sprintf("enrich: record %s has no Lenny identifier", e.Key)
}

// IsEnrichmentError reports whether err is an EnrichmentError (even when wrapped).
func IsEnrichmentError(err error) bool {
	var ee *EnrichmentError
	return errors.As(err, &ee)
}
