package seatsync

import (
	"context"
	"time"
)

// ScrapeRun summarizes one persisted orchestration call.
type ScrapeRun struct {
	ID            string
	Query         string
	Status        AggregateStatus
	TotalListings int
	Duration      time.Duration
	CreatedAt     time.Time
}

// RunStore persists orchestration runs and their listings for the
// downstream analytics corpus. The orchestrator itself never persists;
// persistence is an optional collaborator wired in at the edge.
type RunStore interface {
	// SaveRun persists the run summary and its listings. Listings
	// already seen (by fingerprint) in a previous run are skipped.
	SaveRun(ctx context.Context, query string, result *AggregateResult) error

	// FindRunByID retrieves a persisted run summary.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*ScrapeRun, error)

	// ListingsByRun retrieves the listings persisted for a run.
	ListingsByRun(ctx context.Context, runID string) ([]*Listing, error)
}
