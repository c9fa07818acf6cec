// Package rod provides the browser-automation fetch strategy using
// Chrome via go-rod: full JavaScript rendering, highest fidelity,
// highest cost. All page work is dispatched through the execution
// isolation Pool.
package rod

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	seatsync "github.com/elliotttmiller/seatsync"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds one rendered fetch, including JavaScript
// execution.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements seatsync.Fetcher at compile time.
var _ seatsync.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered listing pages using a headless Chrome
// browser. Fetcher is safe for concurrent use; concurrency is bounded
// by the isolation pool.
type Fetcher struct {
	browser  *rod.Browser
	pool     *Pool
	poolSize int
	timeout  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the default timeout for rendered fetches.
// Requests carrying their own timeout override it per call.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithPoolSize sets the isolation pool size (concurrent browser pages).
func WithPoolSize(n int) Option {
	return func(f *Fetcher) {
		f.poolSize = n
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called
// when the Fetcher is no longer needed.
//
// Returns an EUNAVAILABLE error if Chrome/Chromium cannot be found or
// launched; callers treat that as the signal to fall back to the
// lightweight HTTP strategy for the remainder of the process.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		poolSize: DefaultPoolSize,
	}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, seatsync.Errorf(seatsync.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, seatsync.Errorf(seatsync.EUNAVAILABLE, "connecting to browser: %v", err)
	}

	f.browser = browser
	f.pool = NewPool(f.poolSize)
	return f, nil
}

// Fetch navigates to the request URL under the request's disguise and
// returns the rendered page. The work runs on an isolation pool worker;
// this goroutine only suspends on the dispatch.
func (f *Fetcher) Fetch(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = f.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var page *seatsync.RawPage
	err := f.pool.Do(ctx, func() error {
		var err error
		page, err = f.fetch(ctx, req)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	return page, nil
}

// fetch runs on a pool worker.
func (f *Fetcher) fetch(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if req.Disguise != nil {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: req.Disguise.Identity,
		}); err != nil {
			return nil, err
		}
		if len(req.Disguise.Headers) > 0 {
			cleanup, err := page.SetExtraHeaders(flattenHeaders(req.Disguise.Headers))
			if err != nil {
				return nil, err
			}
			defer cleanup()
		}
	}

	// Capture the document response so the challenge detector sees the
	// real status code, not just the rendered body.
	var resp *proto.NetworkResponseReceived
	waitResp := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type == proto.NetworkResourceTypeDocument {
			resp = e
			return true
		}
		return false
	})

	if err := page.Navigate(req.URL); err != nil {
		return nil, err
	}
	waitResp()

	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	raw := &seatsync.RawPage{
		Body:     []byte(html),
		Header:   http.Header{},
		FinalURL: req.URL,
	}
	if info, err := page.Info(); err == nil && info.URL != "" {
		raw.FinalURL = info.URL
	}
	if resp != nil && resp.Response != nil {
		raw.StatusCode = resp.Response.Status
		for k, v := range resp.Response.Headers {
			raw.Header.Set(k, v.Str())
		}
	}
	return raw, nil
}

// Close drains the isolation pool and releases browser resources.
func (f *Fetcher) Close() error {
	f.pool.Close()
	return f.browser.Close()
}

// flattenHeaders converts a header map to rod's alternating key/value
// form, in stable order.
func flattenHeaders(headers map[string]string) []string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]string, 0, len(headers)*2)
	for _, k := range keys {
		kv = append(kv, k, headers[k])
	}
	return kv
}

// classify maps browser errors onto the domain fetch-error taxonomy.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return seatsync.Errorf(seatsync.ETIMEOUT, "rendered fetch timed out: %v", err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return seatsync.Errorf(seatsync.ENETWORK, "rendered fetch failed: %v", err)
}
