package marketplace

import (
	"net/url"

	seatsync "github.com/elliotttmiller/seatsync"
)

// StubHub returns the scraping configuration for stubhub.com.
func StubHub() *seatsync.SourceConfig {
	return &seatsync.SourceConfig{
		ID:   seatsync.SourceStubHub,
		Name: "StubHub",
		SearchURL: func(query string) string {
			return "https://www.stubhub.com/secure/search?q=" + url.QueryEscape(query)
		},
		Patterns: []seatsync.ExtractionPattern{
			{
				// Current listing grid markup.
				Name: "listing-grid",
				Rows: `[data-testid="listings-container"] [data-testid="listing-row"]`,
				Fields: []seatsync.FieldSelector{
					{Field: seatsync.FieldPrice, Selector: `[data-testid="listing-price"]`},
					{Field: seatsync.FieldSection, Selector: `[data-testid="listing-section"]`},
					{Field: seatsync.FieldRow, Selector: `[data-testid="listing-row-label"]`},
					{Field: seatsync.FieldQuantity, Selector: `[data-testid="listing-quantity"]`},
					{Field: seatsync.FieldURL, Selector: "a", Attr: "href"},
				},
			},
			{
				// Pre-redesign ticket list markup.
				Name: "ticket-list",
				Rows: ".ticket-list .ticket-item",
				Fields: []seatsync.FieldSelector{
					{Field: seatsync.FieldPrice, Selector: ".ticket-price"},
					{Field: seatsync.FieldSection, Selector: ".ticket-section"},
					{Field: seatsync.FieldRow, Selector: ".ticket-row"},
					{Field: seatsync.FieldQuantity, Selector: ".ticket-quantity"},
					{Field: seatsync.FieldURL, Selector: "a", Attr: "href"},
				},
			},
			{
				// Generic fallback: anything listing-shaped with a price.
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
