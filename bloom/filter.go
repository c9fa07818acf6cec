// Package bloom provides a probabilistic seen-listing index used to
// deduplicate listings across scrape runs.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	seatsync "github.com/elliotttmiller/seatsync"
)

// Index tracks listing fingerprints already observed. It is a cheap
// prefilter in front of the store's uniqueness constraint: false
// positives are resolved there, false negatives cannot occur, so a
// listing is never lost to the filter. Not safe for concurrent use;
// callers serialize access.
type Index struct {
	f *bloom.BloomFilter
}

// NewIndex creates an Index sized for n expected listings with the
// given false positive rate.
func NewIndex(n uint, fpRate float64) *Index {
	return &Index{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen reports whether the listing's fingerprint might have been
// remembered before. A false report clears at the store's UNIQUE
// constraint.
func (ix *Index) Seen(l *seatsync.Listing) bool {
	return ix.f.TestString(l.Fingerprint())
}

// Remember records the listing's fingerprint.
func (ix *Index) Remember(l *seatsync.Listing) {
	ix.f.AddString(l.Fingerprint())
}

// ApproxCount returns the approximate number of listings remembered.
func (ix *Index) ApproxCount() uint {
	return uint(ix.f.ApproximatedSize())
}
