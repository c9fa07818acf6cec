package marketplace

import (
	"net/url"

	seatsync "github.com/elliotttmiller/seatsync"
)

// SeatGeek returns the scraping configuration for seatgeek.com.
func SeatGeek() *seatsync.SourceConfig {
	return &seatsync.SourceConfig{
		ID:   seatsync.SourceSeatGeek,
		Name: "SeatGeek",
		SearchURL: func(query string) string {
			return "https://seatgeek.com/search?search=" + url.QueryEscape(query)
		},
		Patterns: []seatsync.ExtractionPattern{
			{
				Name: "omnibox-listings",
				Rows: `[data-testid="listings-list"] [data-testid="listing-card"]`,
				Fields: []seatsync.FieldSelector{
					{Field: seatsync.FieldPrice, Selector: `[data-testid="listing-card-price"]`},
					{Field: seatsync.FieldSection, Selector: `[data-testid="listing-card-section"]`},
					{Field: seatsync.FieldRow, Selector: `[data-testid="listing-card-row"]`},
					{Field: seatsync.FieldQuantity, Selector: `[data-testid="listing-card-quantity"]`},
					{Field: seatsync.FieldURL, Selector: "a", Attr: "href"},
				},
			},
			{
				Name: "event-listings",
				Rows: ".event-listings .listing",
				Fields: []seatsync.FieldSelector{
					{Field: seatsync.FieldPrice, Selector: ".listing-price"},
					{Field: seatsync.FieldSection, Selector: ".listing-section"},
					{Field: seatsync.FieldRow, Selector: ".listing-row"},
					{Field: seatsync.FieldURL, Selector: "a", Attr: "href"},
				},
			},
			{
				Name: "generic-listing",
				Rows: `[class*="Listing"]`,
				Fields: []seatsync.FieldSelector{
					{Field: seatsync.FieldPrice, Selector: `[class*="Price"]`},
					{Field: seatsync.FieldSection, Selector: `[class*="Section"]`},
				},
			},
		},
	}
}
