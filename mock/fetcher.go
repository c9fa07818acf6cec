package mock

import (
	"context"

	seatsync "github.com/elliotttmiller/seatsync"
)

var _ seatsync.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of seatsync.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
	return f.FetchFn(ctx, req)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
