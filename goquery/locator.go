// Package goquery provides the element locator: CSS-selector-driven
// extraction of raw listing fields with an ordered fallback pattern
// chain per marketplace.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	seatsync "github.com/elliotttmiller/seatsync"
)

// Ensure Locator implements seatsync.Locator at compile time.
var _ seatsync.Locator = (*Locator)(nil)

// Locator applies ordered extraction pattern chains to page HTML.
// It is stateless and safe for concurrent use.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate tries each pattern in order and returns the rows from the
// first pattern that yields a non-empty set; remaining patterns are
// not tried. No pattern matching returns an empty set and no error.
func (l *Locator) Locate(html string, patterns []seatsync.ExtractionPattern) ([]seatsync.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, seatsync.Errorf(seatsync.EINVALID, "parsing page HTML: %v", err)
	}

	for _, pattern := range patterns {
		if rows := applyPattern(doc, pattern); len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, nil
}

// applyPattern extracts one raw listing per row element. Rows that
// yield no fields are dropped, so a pattern whose row selector matches
// chrome elements but extracts nothing does not win the chain.
func applyPattern(doc *goquery.Document, pattern seatsync.ExtractionPattern) []seatsync.RawListing {
	var rows []seatsync.RawListing
	doc.Find(pattern.Rows).Each(func(_ int, row *goquery.Selection) {
		raw := seatsync.RawListing{}
		for _, fs := range pattern.Fields {
			if value := extractField(row, fs); value != "" {
				raw[fs.Field] = value
			}
		}
		if len(raw) > 0 {
			rows = append(rows, raw)
		}
	})
	return rows
}

func extractField(row *goquery.Selection, fs seatsync.FieldSelector) string {
	target := row
	if fs.Selector != "" {
		target = row.Find(fs.Selector).First()
		if target.Length() == 0 {
			return ""
		}
	}
	if fs.Attr != "" {
		value, _ := target.Attr(fs.Attr)
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(target.Text())
}
