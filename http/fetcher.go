// Package http provides the lightweight HTTP fetch strategy: a single
// request under the disguise's header set, no JavaScript rendering.
// It is the process-wide fallback when browser automation is
// unavailable.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	seatsync "github.com/elliotttmiller/seatsync"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response is read. Listing pages are
// well under this; the cap keeps a hostile endpoint from ballooning
// memory.
const maxBodyBytes = 4 << 20

// Ensure Fetcher implements seatsync.Fetcher at compile time.
var _ seatsync.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page content using plain HTTP requests. Unlike
// rod.Fetcher, this does not execute JavaScript and fails on JS-gated
// content. Non-2xx responses are returned as pages, not errors: the
// challenge detector needs block-page bodies.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the default timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient replaces the underlying HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{}
	}
	return f
}

// Fetch issues one GET under the request's disguise and returns the
// raw page for any HTTP status.
func (f *Fetcher) Fetch(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = f.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, seatsync.Errorf(seatsync.EINVALID, "invalid fetch URL %q: %v", req.URL, err)
	}
	if req.Disguise != nil {
		hreq.Header.Set("User-Agent", req.Disguise.Identity)
		for k, v := range req.Disguise.Headers {
			hreq.Header.Set(k, v)
		}
	}

	resp, err := f.client.Do(hreq)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(err)
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return &seatsync.RawPage{
		StatusCode: resp.StatusCode,
		Body:       body,
		Header:     resp.Header,
		FinalURL:   finalURL,
	}, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// classify maps transport errors onto the domain fetch-error taxonomy.
func classify(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return seatsync.Errorf(seatsync.ETIMEOUT, "fetch timed out: %v", err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return seatsync.Errorf(seatsync.ENETWORK, "fetch failed: %v", err)
}
