package scrape

import (
	"context"
	"log/slog"
	"time"

	seatsync "github.com/elliotttmiller/seatsync"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// DefaultConcurrencyCap bounds the default concurrency limit so the
// number of simultaneously open browser sessions stays fixed no matter
// how many sources are requested.
const DefaultConcurrencyCap = 4

// ScrapeRequest describes one orchestration call.
type ScrapeRequest struct {
	// Query is the event search query.
	Query string
	// Sources to scrape. Empty means all configured sources.
	Sources []seatsync.Source
	// Concurrency limits simultaneous scrapers. Zero means
	// min(len(sources), DefaultConcurrencyCap); 1 is sequential mode.
	Concurrency int
	// MaxAttempts overrides the per-source retry budget. Zero means
	// DefaultMaxAttempts.
	MaxAttempts int
	// Deadline bounds the whole call. Zero means wait for natural
	// completion.
	Deadline time.Time
}

// Orchestrator fans per-source scrapers out across marketplaces under
// a bounded concurrency limit and joins every SourceResult into one
// AggregateResult. It never cancels sibling scrapers because one
// fails; a source's fatal outcome is recorded in its result only.
type Orchestrator struct {
	Fetcher    seatsync.Fetcher
	Rotator    seatsync.DisguiseRotator
	Detector   seatsync.ChallengeDetector
	Locator    seatsync.Locator
	Normalizer *Normalizer
	Limiter    *SourceLimiter

	// Sources holds the configured marketplaces.
	Sources map[seatsync.Source]*seatsync.SourceConfig

	// Capabilities records the process-wide strategy probe outcome,
	// for observability. The Fetcher is already the selected strategy.
	Capabilities seatsync.Capabilities

	Backoff      Backoff
	MaxAttempts  int
	Concurrency  int
	FetchTimeout time.Duration
	Logger       *slog.Logger
}

// ScrapeSources runs one per-source scraper per requested source and
// returns the aggregate outcome. The returned error is non-nil only
// for caller-input problems (EINVALID); fetch, challenge, and
// extraction failures are reported inside the AggregateResult.
func (o *Orchestrator) ScrapeSources(ctx context.Context, req *ScrapeRequest) (*seatsync.AggregateResult, error) {
	start := time.Now()
	runID := uuid.New().String()
	logger := o.logger()

	sources, err := o.resolveSources(req.Sources)
	if err != nil {
		return &seatsync.AggregateResult{
			RunID:    runID,
			Status:   seatsync.AggregateError,
			Results:  map[seatsync.Source]*seatsync.SourceResult{},
			Duration: time.Since(start),
		}, err
	}

	if !req.Deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, req.Deadline)
		defer cancel()
	}

	limit := req.Concurrency
	if limit <= 0 {
		limit = o.Concurrency
	}
	if limit <= 0 {
		limit = len(sources)
		if limit > DefaultConcurrencyCap {
			limit = DefaultConcurrencyCap
		}
	}

	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = o.MaxAttempts
	}

	scraper := &SourceScraper{
		Fetcher:      o.Fetcher,
		Rotator:      o.Rotator,
		Detector:     o.Detector,
		Locator:      o.Locator,
		Normalizer:   o.Normalizer,
		Limiter:      o.Limiter,
		Backoff:      o.Backoff,
		MaxAttempts:  maxAttempts,
		FetchTimeout: o.FetchTimeout,
		Logger:       o.Logger,
	}

	logger.Info("scrape run started",
		"run_id", runID,
		"query", req.Query,
		"sources", len(sources),
		"concurrency", limit,
		"browser_automation", o.Capabilities.BrowserAutomation,
	)

	// The channel is buffered for every source so abandoned scrapers
	// can still deliver without a reader and be garbage collected.
	sem := semaphore.NewWeighted(int64(limit))
	resultCh := make(chan *seatsync.SourceResult, len(sources))
	for _, src := range sources {
		cfg := o.Sources[src]
		go func() {
			if err := sem.Acquire(ctx, 1); err != nil {
				resultCh <- &seatsync.SourceResult{
					Source: cfg.ID,
					Status: seatsync.SourceError,
					Detail: seatsync.Errorf(seatsync.ETIMEOUT, "%s abandoned at deadline", cfg.ID),
				}
				return
			}
			defer sem.Release(1)
			resultCh <- scraper.Scrape(ctx, cfg, req.Query)
		}()
	}

	// Join, not race: collect every result, but stop waiting at the
	// deadline and synthesize timeout results for sources still in
	// flight. Results already collected are preserved.
	results := make(map[seatsync.Source]*seatsync.SourceResult, len(sources))
	for len(results) < len(sources) {
		select {
		case r := <-resultCh:
			results[r.Source] = r
		case <-ctx.Done():
			// A delivery racing the deadline may already sit in the
			// buffer; the select picks among ready cases at random, so
			// drain before synthesizing timeouts or a completed
			// source's listings would be discarded.
		drain:
			for {
				select {
				case r := <-resultCh:
					results[r.Source] = r
				default:
					break drain
				}
			}
			for _, src := range sources {
				if _, ok := results[src]; !ok {
					results[src] = &seatsync.SourceResult{
						Source: src,
						Status: seatsync.SourceError,
						Detail: seatsync.Errorf(seatsync.ETIMEOUT, "%s abandoned at deadline", src),
					}
				}
			}
		}
	}

	agg := &seatsync.AggregateResult{
		RunID:    runID,
		Status:   seatsync.OverallStatus(results),
		Results:  results,
		Duration: time.Since(start),
	}
	for _, r := range results {
		agg.TotalListings += len(r.Listings)
	}

	logger.Info("scrape run finished",
		"run_id", runID,
		"status", agg.Status,
		"listings", agg.TotalListings,
		"duration", agg.Duration,
	)
	return agg, nil
}

// resolveSources expands the wildcard (empty) request to all configured
// sources, deduplicates, and rejects unknown or empty selections.
func (o *Orchestrator) resolveSources(requested []seatsync.Source) ([]seatsync.Source, error) {
	if len(requested) == 0 {
		for _, src := range seatsync.KnownSources() {
			if _, ok := o.Sources[src]; ok {
				requested = append(requested, src)
			}
		}
	}

	seen := make(map[seatsync.Source]bool, len(requested))
	var sources []seatsync.Source
	for _, src := range requested {
		if seen[src] {
			continue
		}
		if _, ok := o.Sources[src]; !ok {
			return nil, seatsync.Errorf(seatsync.EINVALID, "unknown source %q", src)
		}
		seen[src] = true
		sources = append(sources, src)
	}

	if len(sources) == 0 {
		return nil, seatsync.Errorf(seatsync.EINVALID, "no sources selected")
	}
	return sources, nil
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
