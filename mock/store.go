package mock

import (
	"context"

	seatsync "github.com/elliotttmiller/seatsync"
)

var _ seatsync.RunStore = (*RunStore)(nil)

// RunStore is a mock implementation of seatsync.RunStore.
type RunStore struct {
	SaveRunFn       func(ctx context.Context, query string, result *seatsync.AggregateResult) error
	FindRunByIDFn   func(ctx context.Context, id string) (*seatsync.ScrapeRun, error)
	ListingsByRunFn func(ctx context.Context, runID string) ([]*seatsync.Listing, error)
}

func (s *RunStore) SaveRun(ctx context.Context, query string, result *seatsync.AggregateResult) error {
	return s.SaveRunFn(ctx, query, result)
}

func (s *RunStore) FindRunByID(ctx context.Context, id string) (*seatsync.ScrapeRun, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunStore) ListingsByRun(ctx context.Context, runID string) ([]*seatsync.Listing, error) {
	return s.ListingsByRunFn(ctx, runID)
}
