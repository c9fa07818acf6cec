package marketplace

import (
	"net/url"

	seatsync "github.com/elliotttmiller/seatsync"
)

// VividSeats returns the scraping configuration for vividseats.com.
func VividSeats() *seatsync.SourceConfig {
	return &seatsync.SourceConfig{
		ID:   seatsync.SourceVividSeats,
		Name: "Vivid Seats",
		SearchURL: func(query string) string {
			return "https://www.vividseats.com/search?searchTerm=" + url.QueryEscape(query)
		},
		Patterns: []seatsync.ExtractionPattern{
			{
				Name: "ticket-group-rows",
				Rows: `[data-testid="listings-container"] [data-testid="ticket-group-row"]`,
				Fields: []seatsync.FieldSelector{
					{Field: seatsync.FieldPrice, Selector: `[data-testid="ticket-group-price"]`},
					{Field: seatsync.FieldSection, Selector: `[data-testid="ticket-group-section"]`},
					{Field: seatsync.FieldRow, Selector: `[data-testid="ticket-group-row-label"]`},
					{Field: seatsync.FieldQuantity, Selector: `[data-testid="ticket-group-quantity"]`},
					{Field: seatsync.FieldURL, Selector: "a", Attr: "href"},
				},
			},
			{
				Name: "production-listings",
				Rows: ".productions-list .production-listing",
				Fields: []seatsync.FieldSelector{
					{Field: seatsync.FieldPrice, Selector: ".production-price"},
					{Field: seatsync.FieldSection, Selector: ".production-section"},
					{Field: seatsync.FieldURL, Selector: "a", Attr: "href"},
				},
			},
			{
				Name: "generic-listing",
				Rows: `[class*="listing"]`,
				Fields: []seatsync.FieldSelector{
					{Field: seatsync.FieldPrice, Selector: `[class*="price"]`},
					{Field: seatsync.FieldSection, Selector: `[class*="section"]`},
				},
			},
		},
	}
}
