package scrape

import (
	"context"
	"errors"
	"log/slog"
	"time"

	seatsync "github.com/elliotttmiller/seatsync"
)

// SourceScraper runs the retrieval state machine for one marketplace:
// Init → Fetching → {Challenged → Waiting → Fetching} → Extracting →
// Done. One unified attempt counter covers challenge retries and
// retryable fetch errors; every attempt draws a fresh disguise. A
// SourceScraper holds no per-call state and is safe for concurrent use
// across sources.
type SourceScraper struct {
	Fetcher    seatsync.Fetcher
	Rotator    seatsync.DisguiseRotator
	Detector   seatsync.ChallengeDetector
	Locator    seatsync.Locator
	Normalizer *Normalizer

	// Limiter paces attempts per source. Nil disables pacing.
	Limiter *SourceLimiter

	Backoff      Backoff
	MaxAttempts  int // zero means DefaultMaxAttempts
	FetchTimeout time.Duration
	Logger       *slog.Logger
}

// Scrape retrieves and normalizes listings for one marketplace. It
// always returns a SourceResult; failures are recorded in the result,
// never raised, so one blocked marketplace cannot abort its siblings.
func (s *SourceScraper) Scrape(ctx context.Context, cfg *seatsync.SourceConfig, query string) *seatsync.SourceResult {
	res := &seatsync.SourceResult{Source: cfg.ID}
	target := cfg.SearchURL(query)
	logger := s.logger()

	maxAttempts := s.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var (
		challenged bool
		lastStatus int
		lastErr    error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return s.expired(res)
		}
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx, cfg.ID); err != nil {
				return s.expired(res)
			}
		}

		// An attempt is counted only once it reaches the fetch; a call
		// abandoned at the gates above reports the attempts that ran.
		res.Attempts = attempt + 1

		req := &seatsync.FetchRequest{
			URL:      target,
			Source:   cfg.ID,
			Disguise: s.Rotator.Next(),
			Attempt:  attempt,
			Timeout:  s.FetchTimeout,
		}
		page, err := s.Fetcher.Fetch(ctx, req)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return s.expired(res)
			}
			if !seatsync.Retryable(err) {
				res.Status = seatsync.SourceError
				res.Detail = asDetail(err)
				logger.Warn("fetch attempt",
					"source", cfg.ID, "attempt", attempt+1, "outcome", "fatal", "err", err)
				return res
			}
			challenged = false
			lastErr = err
			logger.Warn("fetch attempt",
				"source", cfg.ID, "attempt", attempt+1, "outcome", "retryable_error", "err", err)
		case s.Detector.Challenged(page):
			challenged = true
			lastStatus = page.StatusCode
			logger.Info("fetch attempt",
				"source", cfg.ID, "attempt", attempt+1, "outcome", "challenged", "status", page.StatusCode)
		default:
			logger.Info("fetch attempt",
				"source", cfg.ID, "attempt", attempt+1, "outcome", "fetched", "status", page.StatusCode, "bytes", len(page.Body))
			return s.extract(res, cfg, page, target, logger)
		}

		if attempt == maxAttempts-1 {
			break
		}
		wait, err := s.Backoff.Sleep(ctx, attempt)
		if err != nil {
			return s.expired(res)
		}
		logger.Info("backoff",
			"source", cfg.ID, "attempt", attempt+1, "wait", wait)
	}

	if challenged {
		res.Status = seatsync.SourceBlocked
		res.Detail = seatsync.Errorf(seatsync.EBLOCKED,
			"challenge persisted after %d attempts (last status %d)", res.Attempts, lastStatus)
	} else {
		res.Status = seatsync.SourceError
		res.Detail = asDetail(lastErr)
	}
	logger.Warn("retry budget exhausted",
		"source", cfg.ID, "attempts", res.Attempts, "status", res.Status)
	return res
}

// extract hands the page to the locator's fallback chain and
// normalizes the resulting rows. Zero matching rows is a valid success.
func (s *SourceScraper) extract(res *seatsync.SourceResult, cfg *seatsync.SourceConfig, page *seatsync.RawPage, target string, logger *slog.Logger) *seatsync.SourceResult {
	rows, err := s.Locator.Locate(string(page.Body), cfg.Patterns)
	if err != nil {
		res.Status = seatsync.SourceError
		res.Detail = asDetail(err)
		return res
	}

	pageURL := page.FinalURL
	if pageURL == "" {
		pageURL = target
	}

	normalizer := s.Normalizer
	if normalizer == nil {
		normalizer = &Normalizer{Logger: s.Logger}
	}

	now := time.Now().UTC()
	var failed int
	for _, raw := range rows {
		listing, err := normalizer.Normalize(raw, cfg.ID, pageURL, now)
		if err != nil {
			failed++
			logger.Debug("row normalization failed", "source", cfg.ID, "err", err)
			continue
		}
		res.Listings = append(res.Listings, listing)
	}

	// Partial marks the "got some data, lost some" case only. Zero
	// surviving listings is a valid empty result whether the locator
	// found nothing or every row failed to normalize; the row failures
	// are already logged above.
	if failed > 0 && len(res.Listings) > 0 {
		res.Status = seatsync.SourcePartial
		res.Detail = seatsync.Errorf(seatsync.EINTERNAL,
			"%d of %d raw entries failed to normalize", failed, len(rows))
	} else {
		res.Status = seatsync.SourceSuccess
	}
	logger.Info("extraction complete",
		"source", cfg.ID, "attempts", res.Attempts, "status", res.Status, "listings", len(res.Listings))
	return res
}

// expired marks a result abandoned at the call deadline.
func (s *SourceScraper) expired(res *seatsync.SourceResult) *seatsync.SourceResult {
	res.Status = seatsync.SourceError
	res.Detail = seatsync.Errorf(seatsync.ETIMEOUT, "%s abandoned at deadline", res.Source)
	return res
}

func (s *SourceScraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// asDetail converts any error into a domain error detail.
func asDetail(err error) *seatsync.Error {
	if err == nil {
		return seatsync.Errorf(seatsync.EINTERNAL, "unknown failure")
	}
	var e *seatsync.Error
	if errors.As(err, &e) {
		return e
	}
	return seatsync.Errorf(seatsync.ErrorCode(err), "%s", err.Error())
}
