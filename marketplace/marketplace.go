// Package marketplace supplies per-source scraping configuration:
// search URL builders and ordered extraction pattern chains. This is
// the only place marketplace markup knowledge lives; the engine core
// never embeds it. Chains are ordered most-specific pattern first,
// most-generic last, so incremental markup drift degrades extraction
// gracefully instead of breaking it.
package marketplace

import (
	seatsync "github.com/elliotttmiller/seatsync"
)

// All returns the configuration for every known marketplace, keyed by
// source. The returned configs are read-only and safe to share across
// concurrent scrapers.
func All() map[seatsync.Source]*seatsync.SourceConfig {
	return map[seatsync.Source]*seatsync.SourceConfig{
		seatsync.SourceStubHub:       StubHub(),
		seatsync.SourceSeatGeek:      SeatGeek(),
		seatsync.SourceVividSeats:    VividSeats(),
		seatsync.SourceTicketNetwork: TicketNetwork(),
	}
}
