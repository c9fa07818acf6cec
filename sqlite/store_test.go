package sqlite_test

import (
	"context"
	"testing"
	"time"

	seatsync "github.com/elliotttmiller/seatsync"
	"github.com/elliotttmiller/seatsync/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MustOpenDB opens an in-memory database and registers cleanup.
func MustOpenDB(tb testing.TB) *sqlite.DB {
	tb.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(tb, db.Open())
	tb.Cleanup(func() {
		assert.NoError(tb, db.Close())
	})
	return db
}

func testResult(runID string, listings ...*seatsync.Listing) *seatsync.AggregateResult {
	return &seatsync.AggregateResult{
		RunID:  runID,
		Status: seatsync.AggregateSuccess,
		Results: map[seatsync.Source]*seatsync.SourceResult{
			seatsync.SourceStubHub: {
				Source:   seatsync.SourceStubHub,
				Status:   seatsync.SourceSuccess,
				Listings: listings,
			},
		},
		TotalListings: len(listings),
		Duration:      1200 * time.Millisecond,
	}
}

func testListing(section string) *seatsync.Listing {
	return &seatsync.Listing{
		Source:      seatsync.SourceStubHub,
		SourceURL:   "https://www.stubhub.com/event/123",
		Price:       &seatsync.Price{Amount: decimal.RequireFromString("120.00"), Currency: "USD"},
		Section:     section,
		Row:         "G",
		Quantity:    2,
		RetrievedAt: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
	}
}

func TestRunStore_SaveRun(t *testing.T) {
	t.Parallel()

	t.Run("roundtrip", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		store := sqlite.NewRunStore(db)
		ctx := context.Background()

		result := testResult("run-1", testListing("114"), testListing("115"))
		require.NoError(t, store.SaveRun(ctx, "concert", result))

		run, err := store.FindRunByID(ctx, "run-1")
		require.NoError(t, err)
		assert.Equal(t, "run-1", run.ID)
		assert.Equal(t, "concert", run.Query)
		assert.Equal(t, seatsync.AggregateSuccess, run.Status)
		assert.Equal(t, 2, run.TotalListings)
		assert.Equal(t, 1200*time.Millisecond, run.Duration)
		assert.False(t, run.CreatedAt.IsZero())

		listings, err := store.ListingsByRun(ctx, "run-1")
		require.NoError(t, err)
		require.Len(t, listings, 2)

		first := listings[0]
		assert.Equal(t, seatsync.SourceStubHub, first.Source)
		assert.Equal(t, "114", first.Section)
		assert.Equal(t, "G", first.Row)
		assert.Equal(t, 2, first.Quantity)
		require.NotNil(t, first.Price)
		assert.True(t, first.Price.Amount.Equal(decimal.RequireFromString("120.00")))
		assert.Equal(t, "USD", first.Price.Currency)
	})

	t.Run("listing without price", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		store := sqlite.NewRunStore(db)
		ctx := context.Background()

		listing := testListing("201")
		listing.Price = nil
		require.NoError(t, store.SaveRun(ctx, "concert", testResult("run-1", listing)))

		listings, err := store.ListingsByRun(ctx, "run-1")
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Nil(t, listings[0].Price)
	})

	t.Run("duplicate fingerprints are skipped", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		store := sqlite.NewRunStore(db)
		ctx := context.Background()

		require.NoError(t, store.SaveRun(ctx, "concert", testResult("run-1", testListing("114"))))

		// Same listing resurfaces in a later run; only the run summary
		// is persisted again.
		require.NoError(t, store.SaveRun(ctx, "concert", testResult("run-2", testListing("114"))))

		second, err := store.ListingsByRun(ctx, "run-2")
		require.NoError(t, err)
		assert.Empty(t, second)

		first, err := store.ListingsByRun(ctx, "run-1")
		require.NoError(t, err)
		assert.Len(t, first, 1)
	})
}

func TestRunStore_FindRunByID_NotFound(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	store := sqlite.NewRunStore(db)

	_, err := store.FindRunByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, seatsync.ENOTFOUND, seatsync.ErrorCode(err))
}
