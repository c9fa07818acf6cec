package marketplace

import (
	"net/url"

	seatsync "github.com/elliotttmiller/seatsync"
)

// TicketNetwork returns the scraping configuration for
// ticketnetwork.com.
func TicketNetwork() *seatsync.SourceConfig {
	return &seatsync.SourceConfig{
		ID:   seatsync.SourceTicketNetwork,
		Name: "TicketNetwork",
		SearchURL: func(query string) string {
			return "https://www.ticketnetwork.com/search?q=" + url.QueryEscape(query)
		},
		Patterns: []seatsync.ExtractionPattern{
			{
				Name: "ticket-rows",
				Rows: "#ticket-list .ticket-row",
				Fields: []seatsync.FieldSelector{
					{Field: seatsync.FieldPrice, Selector: ".ticket-price"},
					{Field: seatsync.FieldSection, Selector: ".ticket-section"},
					{Field: seatsync.FieldRow, Selector: ".ticket-row-label"},
					{Field: seatsync.FieldQuantity, Selector: ".ticket-qty"},
					{Field: seatsync.FieldURL, Selector: "a", Attr: "href"},
				},
			},
			{
				Name: "grouped-tickets",
				Rows: ".ticket-groups .ticket-group",
				Fields: []seatsync.FieldSelector{
					{Field: seatsync.FieldPrice, Selector: ".group-price"},
					{Field: seatsync.FieldSection, Selector: ".group-section"},
					{Field: seatsync.FieldQuantity, Selector: ".group-quantity"},
				},
			},
			{
				Name: "generic-listing",
				Rows: `[class*="ticket"]`,
				Fields: []seatsync.FieldSelector{
					{Field: seatsync.FieldPrice, Selector: `[class*="price"]`},
					{Field: seatsync.FieldSection, Selector: `[class*="section"]`},
				},
			},
		},
	}
}
