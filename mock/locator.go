package mock

import seatsync "github.com/elliotttmiller/seatsync"

var _ seatsync.Locator = (*Locator)(nil)

// Locator is a mock implementation of seatsync.Locator.
type Locator struct {
	LocateFn func(html string, patterns []seatsync.ExtractionPattern) ([]seatsync.RawListing, error)
}

func (l *Locator) Locate(html string, patterns []seatsync.ExtractionPattern) ([]seatsync.RawListing, error) {
	return l.LocateFn(html, patterns)
}
