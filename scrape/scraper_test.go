package scrape_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	seatsync "github.com/elliotttmiller/seatsync"
	"github.com/elliotttmiller/seatsync/mock"
	"github.com/elliotttmiller/seatsync/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastBackoff keeps retry waits in the microsecond range and disables
// jitter so tests are quick and deterministic.
var fastBackoff = scrape.Backoff{
	Initial: 100 * time.Microsecond,
	Factor:  1.5,
	Max:     time.Millisecond,
	Jitter:  -1,
}

func testSourceConfig(id seatsync.Source) *seatsync.SourceConfig {
	return &seatsync.SourceConfig{
		ID:   id,
		Name: string(id),
		SearchURL: func(q string) string {
			return "https://example.com/search?q=" + q
		},
		Patterns: []seatsync.ExtractionPattern{{
			Name: "test",
			Rows: ".listing",
			Fields: []seatsync.FieldSelector{
				{Field: seatsync.FieldPrice, Selector: ".price"},
			},
		}},
	}
}

func staticRotator() *mock.DisguiseRotator {
	return &mock.DisguiseRotator{
		NextFn: func() *seatsync.DisguiseProfile {
			return &seatsync.DisguiseProfile{Identity: "test"}
		},
	}
}

func TestSourceScraper_Scrape(t *testing.T) {
	t.Parallel()

	cfg := testSourceConfig(seatsync.SourceStubHub)

	t.Run("persistent challenge exhausts the budget", func(t *testing.T) {
		t.Parallel()

		var fetches int
		scraper := &scrape.SourceScraper{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
				fetches++
				return &seatsync.RawPage{StatusCode: http.StatusForbidden}, nil
			}},
			Rotator:     staticRotator(),
			Detector:    &mock.ChallengeDetector{ChallengedFn: func(*seatsync.RawPage) bool { return true }},
			Backoff:     fastBackoff,
			MaxAttempts: 5,
		}

		res := scraper.Scrape(context.Background(), cfg, "concert")

		assert.Equal(t, seatsync.SourceBlocked, res.Status)
		assert.Equal(t, 5, res.Attempts)
		assert.Equal(t, 5, fetches)
		require.NotNil(t, res.Detail)
		assert.Equal(t, seatsync.EBLOCKED, res.Detail.Code)
	})

	t.Run("fresh disguise drawn every attempt", func(t *testing.T) {
		t.Parallel()

		var draws int
		rotator := &mock.DisguiseRotator{NextFn: func() *seatsync.DisguiseProfile {
			draws++
			return &seatsync.DisguiseProfile{Identity: "test"}
		}}
		scraper := &scrape.SourceScraper{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
				return &seatsync.RawPage{StatusCode: http.StatusForbidden}, nil
			}},
			Rotator:     rotator,
			Detector:    &mock.ChallengeDetector{ChallengedFn: func(*seatsync.RawPage) bool { return true }},
			Backoff:     fastBackoff,
			MaxAttempts: 3,
		}

		scraper.Scrape(context.Background(), cfg, "concert")

		assert.Equal(t, 3, draws)
	})

	t.Run("zero matching rows is a success", func(t *testing.T) {
		t.Parallel()

		scraper := &scrape.SourceScraper{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
				return &seatsync.RawPage{StatusCode: http.StatusOK, Body: []byte("<html></html>")}, nil
			}},
			Rotator:  staticRotator(),
			Detector: &mock.ChallengeDetector{ChallengedFn: func(*seatsync.RawPage) bool { return false }},
			Locator: &mock.Locator{LocateFn: func(string, []seatsync.ExtractionPattern) ([]seatsync.RawListing, error) {
				return nil, nil
			}},
			Backoff:     fastBackoff,
			MaxAttempts: 5,
		}

		res := scraper.Scrape(context.Background(), cfg, "concert")

		assert.Equal(t, seatsync.SourceSuccess, res.Status)
		assert.Empty(t, res.Listings)
		assert.Equal(t, 1, res.Attempts)
		assert.Nil(t, res.Detail)
	})

	t.Run("some rows failing yields partial", func(t *testing.T) {
		t.Parallel()

		scraper := &scrape.SourceScraper{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
				return &seatsync.RawPage{StatusCode: http.StatusOK, Body: []byte("<html></html>")}, nil
			}},
			Rotator:  staticRotator(),
			Detector: &mock.ChallengeDetector{ChallengedFn: func(*seatsync.RawPage) bool { return false }},
			Locator: &mock.Locator{LocateFn: func(string, []seatsync.ExtractionPattern) ([]seatsync.RawListing, error) {
				return []seatsync.RawListing{
					{seatsync.FieldPrice: "$120.00", seatsync.FieldSection: "114"},
					{seatsync.FieldPrice: "sold out"},
				}, nil
			}},
			Backoff:     fastBackoff,
			MaxAttempts: 5,
		}

		res := scraper.Scrape(context.Background(), cfg, "concert")

		assert.Equal(t, seatsync.SourcePartial, res.Status)
		require.Len(t, res.Listings, 1)
		assert.Equal(t, "114", res.Listings[0].Section)
		require.NotNil(t, res.Detail)
		assert.Equal(t, seatsync.EINTERNAL, res.Detail.Code)
	})

	t.Run("every row failing yields zero-listing success", func(t *testing.T) {
		t.Parallel()

		scraper := &scrape.SourceScraper{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
				return &seatsync.RawPage{StatusCode: http.StatusOK, Body: []byte("<html></html>")}, nil
			}},
			Rotator:  staticRotator(),
			Detector: &mock.ChallengeDetector{ChallengedFn: func(*seatsync.RawPage) bool { return false }},
			Locator: &mock.Locator{LocateFn: func(string, []seatsync.ExtractionPattern) ([]seatsync.RawListing, error) {
				return []seatsync.RawListing{{seatsync.FieldPrice: "TBD"}}, nil
			}},
			Backoff:     fastBackoff,
			MaxAttempts: 5,
		}

		res := scraper.Scrape(context.Background(), cfg, "concert")

		assert.Equal(t, seatsync.SourceSuccess, res.Status)
		assert.Empty(t, res.Listings)
		assert.Nil(t, res.Detail)
	})

	t.Run("non-retryable error fails immediately", func(t *testing.T) {
		t.Parallel()

		var fetches int
		scraper := &scrape.SourceScraper{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
				fetches++
				return nil, seatsync.Errorf(seatsync.EUNAVAILABLE, "browser gone")
			}},
			Rotator:     staticRotator(),
			Detector:    &mock.ChallengeDetector{ChallengedFn: func(*seatsync.RawPage) bool { return false }},
			Backoff:     fastBackoff,
			MaxAttempts: 5,
		}

		res := scraper.Scrape(context.Background(), cfg, "concert")

		assert.Equal(t, seatsync.SourceError, res.Status)
		assert.Equal(t, 1, fetches)
		require.NotNil(t, res.Detail)
		assert.Equal(t, seatsync.EUNAVAILABLE, res.Detail.Code)
	})

	t.Run("retryable errors share the challenge budget", func(t *testing.T) {
		t.Parallel()

		var fetches int
		scraper := &scrape.SourceScraper{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
				fetches++
				if fetches < 3 {
					return nil, seatsync.Errorf(seatsync.ENETWORK, "connection reset")
				}
				return &seatsync.RawPage{StatusCode: http.StatusOK, Body: []byte("<html></html>")}, nil
			}},
			Rotator:  staticRotator(),
			Detector: &mock.ChallengeDetector{ChallengedFn: func(*seatsync.RawPage) bool { return false }},
			Locator: &mock.Locator{LocateFn: func(string, []seatsync.ExtractionPattern) ([]seatsync.RawListing, error) {
				return nil, nil
			}},
			Backoff:     fastBackoff,
			MaxAttempts: 5,
		}

		res := scraper.Scrape(context.Background(), cfg, "concert")

		assert.Equal(t, seatsync.SourceSuccess, res.Status)
		assert.Equal(t, 3, res.Attempts)
	})

	t.Run("exhausted retryable errors report the last error", func(t *testing.T) {
		t.Parallel()

		scraper := &scrape.SourceScraper{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
				return nil, seatsync.Errorf(seatsync.ENETWORK, "connection reset")
			}},
			Rotator:     staticRotator(),
			Detector:    &mock.ChallengeDetector{ChallengedFn: func(*seatsync.RawPage) bool { return false }},
			Backoff:     fastBackoff,
			MaxAttempts: 3,
		}

		res := scraper.Scrape(context.Background(), cfg, "concert")

		assert.Equal(t, seatsync.SourceError, res.Status)
		assert.Equal(t, 3, res.Attempts)
		require.NotNil(t, res.Detail)
		assert.Equal(t, seatsync.ENETWORK, res.Detail.Code)
	})

	t.Run("expired context abandons the source", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		scraper := &scrape.SourceScraper{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, req *seatsync.FetchRequest) (*seatsync.RawPage, error) {
				t.Fatal("fetch should not run after cancellation")
				return nil, nil
			}},
			Rotator:     staticRotator(),
			Detector:    &mock.ChallengeDetector{ChallengedFn: func(*seatsync.RawPage) bool { return false }},
			Backoff:     fastBackoff,
			MaxAttempts: 5,
		}

		res := scraper.Scrape(ctx, cfg, "concert")

		assert.Equal(t, seatsync.SourceError, res.Status)
		assert.Zero(t, res.Attempts, "no fetch ran, so none may be counted")
		require.NotNil(t, res.Detail)
		assert.Equal(t, seatsync.ETIMEOUT, res.Detail.Code)
	})
}
