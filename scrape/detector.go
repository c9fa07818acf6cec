package scrape

import (
	"bytes"
	"net/http"

	seatsync "github.com/elliotttmiller/seatsync"
)

// DefaultDetectionBudget bounds how many body bytes are inspected for
// challenge markers. Markers reliably appear near the top of challenge
// documents, so scanning the whole page buys nothing.
const DefaultDetectionBudget = 8 * 1024

// emptyBodyThreshold: block-typical statuses with less visible content
// than this are treated as challenges even without a marker.
const emptyBodyThreshold = 64

// challengeMarkers are lowercase substrings that identify known
// challenge and block pages across the anti-bot vendors the
// marketplaces deploy.
var challengeMarkers = [][]byte{
	[]byte("cf-browser-verification"),
	[]byte("cf-challenge"),
	[]byte("challenge-platform"),
	[]byte("cf_chl_opt"),
	[]byte("px-captcha"),
	[]byte("_incapsula_"),
	[]byte("distil_r_captcha"),
	[]byte("captcha"),
	[]byte("are you a human"),
	[]byte("verify you are human"),
	[]byte("pardon our interruption"),
	[]byte("request blocked"),
	[]byte("access denied"),
	[]byte("unusual traffic"),
}

// Ensure Detector implements seatsync.ChallengeDetector at compile time.
var _ seatsync.ChallengeDetector = (*Detector)(nil)

// Detector recognizes challenge and block pages by scanning a bounded
// prefix of the response body. It is stateless and safe for concurrent
// use.
type Detector struct {
	// Budget overrides the number of body bytes inspected.
	// Zero means DefaultDetectionBudget.
	Budget int
}

// NewDetector creates a Detector with the default inspection budget.
func NewDetector() *Detector {
	return &Detector{}
}

// Challenged reports whether the page looks like active bot mitigation
// rather than the requested content.
func (d *Detector) Challenged(page *seatsync.RawPage) bool {
	if page == nil {
		return false
	}

	budget := d.Budget
	if budget <= 0 {
		budget = DefaultDetectionBudget
	}
	body := page.Body
	if len(body) > budget {
		body = body[:budget]
	}
	lower := bytes.ToLower(body)

	for _, marker := range challengeMarkers {
		if bytes.Contains(lower, marker) {
			return true
		}
	}

	// Block-typical statuses that arrive with no real content are
	// challenges even when the vendor strips its markers.
	switch page.StatusCode {
	case http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return len(bytes.TrimSpace(body)) < emptyBodyThreshold
	}
	return false
}
