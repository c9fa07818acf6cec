package seatsync

import (
	"encoding/hex"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// Source identifies one ticket-resale marketplace. Sources are drawn
// from a fixed set and are safe to use as map keys.
type Source string

// Known marketplaces.
const (
	SourceStubHub       Source = "stubhub"
	SourceSeatGeek      Source = "seatgeek"
	SourceVividSeats    Source = "vividseats"
	SourceTicketNetwork Source = "ticketnetwork"
)

// KnownSources returns every marketplace the engine can scrape,
// in stable order.
func KnownSources() []Source {
	return []Source{
		SourceStubHub,
		SourceSeatGeek,
		SourceVividSeats,
		SourceTicketNetwork,
	}
}

// ParseSource converts a string to a known Source.
// Returns EINVALID for unrecognized names.
func ParseSource(s string) (Source, error) {
	for _, src := range KnownSources() {
		if string(src) == s {
			return src, nil
		}
	}
	return "", Errorf(EINVALID, "unknown source %q", s)
}

// Price is a currency-explicit decimal amount.
type Price struct {
	Amount   decimal.Decimal
	Currency string
}

// Listing is the normalized unit of scraper output. A Listing with a
// nil Price is valid: it marks availability without pricing. Optional
// descriptors (Section, Row) may be empty and a zero Quantity means
// the field was absent; downstream consumers must treat missing
// optional fields as legitimate.
type Listing struct {
	Source      Source
	SourceURL   string
	Price       *Price
	Section     string
	Row         string
	Quantity    int
	RetrievedAt time.Time
}

// Validate returns an error if the listing violates its invariants.
func (l *Listing) Validate() error {
	if l.Source == "" {
		return Errorf(EINVALID, "listing source required")
	}
	if l.Price != nil && l.Price.Amount.IsNegative() {
		return Errorf(EINVALID, "listing price must be non-negative")
	}
	if l.Quantity < 0 {
		return Errorf(EINVALID, "listing quantity must be positive or absent")
	}
	return nil
}

// Fingerprint returns a stable hex-encoded hash of the listing's
// identifying fields, used for deduplication across runs. The
// retrieval timestamp and source URL are excluded so the same offer
// observed twice hashes identically.
func (l *Listing) Fingerprint() string {
	h := xxhash.New()
	_, _ = h.WriteString(string(l.Source))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(l.Section)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(l.Row)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(strconv.Itoa(l.Quantity))
	_, _ = h.WriteString("\x00")
	if l.Price != nil {
		_, _ = h.WriteString(l.Price.Amount.String())
		_, _ = h.WriteString(l.Price.Currency)
	}
	sum := h.Sum64()
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(sum >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
