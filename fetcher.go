package seatsync

import (
	"context"
	"net/http"
	"time"
)

// FetchRequest describes one fetch attempt. A new value is created per
// attempt; requests are never reused across retries.
type FetchRequest struct {
	URL      string
	Source   Source
	Disguise *DisguiseProfile
	Attempt  int
	Timeout  time.Duration
}

// RawPage is the raw response for one fetch attempt. It is owned
// exclusively by the scraper that fetched it and discarded after
// extraction. Non-2xx statuses are represented here rather than as
// errors: challenge detection needs block-page bodies.
type RawPage struct {
	StatusCode int
	Body       []byte
	Header     http.Header
	FinalURL   string
}

// Fetcher retrieves raw page content for a URL under a disguise
// profile. Two interchangeable implementations exist: a
// browser-automation strategy (rod/, renders JavaScript, highest
// fidelity) and a lightweight HTTP strategy (http/, fast, fails on
// JS-gated content). The implementation is selected once at
// construction time, never per call.
//
// Fetch errors carry codes: ETIMEOUT and ENETWORK are retryable by the
// caller; EUNAVAILABLE is not and signals that the strategy cannot
// initialize.
type Fetcher interface {
	// Fetch retrieves the page, honoring the request's disguise and
	// timeout. The context controls cancellation.
	Fetch(ctx context.Context, req *FetchRequest) (*RawPage, error)

	// Close releases strategy resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Capabilities records process-wide fetch-strategy availability. It is
// set once by a startup probe and injected into construction; it is
// never re-probed per call.
type Capabilities struct {
	// BrowserAutomation is false when the browser runtime is missing
	// or failed to initialize, in which case every call for the
	// remainder of the process uses the lightweight HTTP strategy.
	BrowserAutomation bool
}
