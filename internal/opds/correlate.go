package opds

import "iter"

// IDSource supplies local catalog identifiers for correlation. Each
// variant resolves once to a canonical ordered sequence; after that the
// correlation logic never branches on the original representation.
type IDSource interface {
	resolve() []int64
}

// IDSlice is an ordered sequence of identifiers, indexed directly.
type IDSlice []int64

func (s IDSlice) resolve() []int64 {
	out := make([]int64, len(s))
	copy(out, s)
	return out
}

// IDMap maps a zero-based record position to an identifier. Resolution
// walks positions from 0 upward and stops at the first gap.
type IDMap map[int]int64

func (m IDMap) resolve() []int64 {
	out := make([]int64, 0, len(m))
	for i := 0; ; i++ {
		id, ok := m[i]
		if !ok {
			return out
		}
		out = append(out, id)
	}
}

// IDSeq is any iterable of identifiers, consumed once in iteration order.
type IDSeq iter.Seq[int64]

func (s IDSeq) resolve() []int64 {
	var out []int64
	for id := range s {
		out = append(out, id)
	}
	return out
}

// Correlate assigns one identifier to each of recordCount upstream records
// by position. It returns a CorrelationError when fewer identifiers
// resolve than records need; it never pads or truncates the record side.
func Correlate(src IDSource, recordCount int) ([]int64, error) {
	var ids []int64
	if src != nil {
		ids = src.resolve()
	}
	if len(ids) < recordCount {
		return nil, &CorrelationError{Provided: len(ids), Needed: recordCount}
	}
	return ids[:recordCount], nil
}
