package scrape

import (
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	seatsync "github.com/elliotttmiller/seatsync"
	"github.com/shopspring/decimal"
)

// numberPattern matches the first numeric token in a raw field, e.g.
// "1,234.50" inside "From $1,234.50 ea".
var numberPattern = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)

// Normalizer converts raw field strings into normalized listings.
// Field-level parse failures are logged and the field is omitted from
// the listing; a row fails entirely only when its price is present but
// malformed or when it carries no usable fields at all.
type Normalizer struct {
	// Currency is assumed for extracted prices. Empty means USD.
	Currency string
	// Logger receives field-level parse failures. Nil disables logging.
	Logger *slog.Logger
}

// Normalize converts one raw row into a Listing.
func (n *Normalizer) Normalize(raw seatsync.RawListing, src seatsync.Source, pageURL string, now time.Time) (*seatsync.Listing, error) {
	if len(raw) == 0 {
		return nil, seatsync.Errorf(seatsync.EINTERNAL, "empty raw listing for %s", src)
	}

	listing := &seatsync.Listing{
		Source:      src,
		SourceURL:   pageURL,
		Section:     strings.TrimSpace(raw[seatsync.FieldSection]),
		Row:         strings.TrimSpace(raw[seatsync.FieldRow]),
		RetrievedAt: now,
	}

	if s, ok := raw[seatsync.FieldPrice]; ok {
		price, err := n.parsePrice(s)
		if err != nil {
			// A present-but-malformed price invalidates the whole row:
			// a listing that claims a price we cannot read is not safe
			// to report as "available without pricing".
			return nil, seatsync.Errorf(seatsync.EINTERNAL, "malformed price %q for %s", s, src)
		}
		listing.Price = price
	}

	if s, ok := raw[seatsync.FieldQuantity]; ok {
		qty, ok := firstInt(s)
		if !ok || qty <= 0 {
			n.logFieldFailure(src, seatsync.FieldQuantity, s)
		} else {
			listing.Quantity = qty
		}
	}

	if s, ok := raw[seatsync.FieldURL]; ok {
		if resolved := resolveURL(pageURL, s); resolved != "" {
			listing.SourceURL = resolved
		} else {
			n.logFieldFailure(src, seatsync.FieldURL, s)
		}
	}

	if err := listing.Validate(); err != nil {
		return nil, err
	}
	return listing, nil
}

func (n *Normalizer) parsePrice(s string) (*seatsync.Price, error) {
	token := numberPattern.FindString(s)
	if token == "" {
		return nil, seatsync.Errorf(seatsync.EINTERNAL, "no numeric token in %q", s)
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(token, ",", ""))
	if err != nil {
		return nil, seatsync.Errorf(seatsync.EINTERNAL, "parsing %q: %v", token, err)
	}
	if amount.IsNegative() {
		return nil, seatsync.Errorf(seatsync.EINTERNAL, "negative price %q", s)
	}
	currency := n.Currency
	if currency == "" {
		currency = "USD"
	}
	return &seatsync.Price{Amount: amount, Currency: currency}, nil
}

func (n *Normalizer) logFieldFailure(src seatsync.Source, field, value string) {
	if n.Logger == nil {
		return
	}
	n.Logger.Debug("field parse failure, omitting field",
		"source", src,
		"field", field,
		"value", value,
	)
}

// firstInt extracts the first run of digits in s.
func firstInt(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(s[start:i])
			return n, err == nil
		}
	}
	if start >= 0 {
		n, err := strconv.Atoi(s[start:])
		return n, err == nil
	}
	return 0, false
}

// resolveURL resolves a possibly relative listing link against the page
// URL. Returns "" when either URL is unparseable.
func resolveURL(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
