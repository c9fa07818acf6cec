package seatsync

// Standard field names produced by extraction patterns and consumed by
// normalization.
const (
	FieldPrice    = "price"
	FieldSection  = "section"
	FieldRow      = "row"
	FieldQuantity = "quantity"
	FieldURL      = "url"
)

// FieldSelector extracts one named field from a listing row.
type FieldSelector struct {
	// Field is the standard field name (FieldPrice, FieldSection, ...).
	Field string
	// Selector is a CSS selector relative to the row element.
	// Empty means the row element itself.
	Selector string
	// Attr names the attribute to read. Empty means text content.
	Attr string
}

// ExtractionPattern is one entry in a source's fallback chain: a row
// selector plus the field selectors applied to each matched row.
// Chains are ordered most-specific first, most-generic last, so the
// engine tolerates incremental markup drift without a redeploy.
type ExtractionPattern struct {
	Name   string
	Rows   string
	Fields []FieldSelector
}

// RawListing holds the raw field strings extracted for one listing row,
// keyed by standard field name.
type RawListing map[string]string

// Locator applies an ordered pattern chain to page content. The first
// pattern yielding a non-empty row set wins and remaining patterns are
// not tried. No pattern matching is not an error: it returns an empty
// set, a valid zero-result outcome distinct from a detected block.
type Locator interface {
	Locate(html string, patterns []ExtractionPattern) ([]RawListing, error)
}
