package opds

import (
	"errors"
	"fmt"
)

// CorrelationError reports that fewer identifiers were supplied than
// upstream records to correlate. Partial correlation is never attempted.
type CorrelationError struct {
	Provided int
	Needed   int
}

func (e *CorrelationError) Error() string {
	return fmt.Sprintf("correlate: %d identifiers supplied for %d records", e.Provided, e.Needed)
}

// IsCorrelationError reports whether err is a CorrelationError (even when wrapped).
func IsCorrelationError(err error) bool {
	var ce *CorrelationError
	return errors.As(err, &ce)
}

// FeedConsistencyError reports pagination parameters that cannot describe
// the supplied records. The assembler surfaces the mismatch instead of
// clipping or padding.
type FeedConsistencyError struct {
	Reason string
}

func (e *FeedConsistencyError) Error() string {
	return "assemble feed: " + e.Reason
}

// IsFeedConsistencyError reports whether err is a FeedConsistencyError (even when wrapped).
func IsFeedConsistencyError(err error) bool {
	var fe *FeedConsistencyError
	return errors.As(err, &fe)
}
