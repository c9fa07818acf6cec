// Package slog provides logging middleware around domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	seatsync "github.com/elliotttmiller/seatsync"
)

// Ensure LoggingFetcher implements seatsync.Fetcher at compile time.
var _ seatsync.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with structured logging of every
// fetch attempt: source, URL, attempt number, outcome, bytes, and
// duration. The log line is enough to reconstruct the retrieval trace
// without re-running the call.
type LoggingFetcher struct {
	next   seatsync.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next seatsync.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the attempt.
func (f *LoggingFetcher) Fetch(ctx context.Context, req *seatsync.FetchRequest) (page *seatsync.RawPage, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"source", req.Source,
			"url", req.URL,
			"attempt", req.Attempt + 1,
			"duration", time.Since(begin),
		}
		if page != nil {
			attrs = append(attrs, "status", page.StatusCode, "bytes", len(page.Body))
		}
		attrs = append(attrs, "err", err)
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
