package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	seatsync "github.com/elliotttmiller/seatsync"
	"github.com/elliotttmiller/seatsync/bloom"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bloom prefilter sizing for the seen-fingerprint set.
const (
	expectedFingerprints = 100000
	falsePositiveRate    = 0.01
)

// Compile-time interface verification.
var _ seatsync.RunStore = (*RunStore)(nil)

// RunStore implements seatsync.RunStore using SQLite. A Bloom index
// prefilters listings already persisted; the UNIQUE constraint on
// fingerprint resolves its false positives.
type RunStore struct {
	db   *DB
	seen *bloom.Index
}

// NewRunStore creates a new RunStore.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{
		db:   db,
		seen: bloom.NewIndex(expectedFingerprints, falsePositiveRate),
	}
}

// SaveRun persists the run summary and its listings. Listings whose
// fingerprint was already persisted (this run or a previous one) are
// skipped.
func (s *RunStore) SaveRun(ctx context.Context, query string, result *seatsync.AggregateResult) error {
	runID := result.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrape_runs (id, query, status, total_listings, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, query, string(result.Status), result.TotalListings,
		result.Duration.Milliseconds(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, listing := range result.Listings() {
		if err := s.saveListing(ctx, runID, listing); err != nil {
			return err
		}
	}
	return nil
}

func (s *RunStore) saveListing(ctx context.Context, runID string, listing *seatsync.Listing) error {
	if s.seen.Seen(listing) {
		return nil
	}
	s.seen.Remember(listing)

	var price, currency sql.NullString
	if listing.Price != nil {
		price = sql.NullString{String: listing.Price.Amount.String(), Valid: true}
		currency = sql.NullString{String: listing.Price.Currency, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO listings
			(id, run_id, source, source_url, price, currency, section, seat_row, quantity, fingerprint, retrieved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), runID, string(listing.Source), listing.SourceURL,
		price, currency, listing.Section, listing.Row, listing.Quantity, listing.Fingerprint(),
		listing.RetrievedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting listing: %w", err)
	}
	return nil
}

// FindRunByID retrieves a persisted run summary.
// Returns ENOTFOUND if the run does not exist.
func (s *RunStore) FindRunByID(ctx context.Context, id string) (*seatsync.ScrapeRun, error) {
	var run seatsync.ScrapeRun
	var status string
	var durationMS int64
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, query, status, total_listings, duration_ms, created_at
		FROM scrape_runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Query, &status, &run.TotalListings, &durationMS, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, seatsync.Errorf(seatsync.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.Status = seatsync.AggregateStatus(status)
	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &run, nil
}

// ListingsByRun retrieves the listings persisted for a run.
func (s *RunStore) ListingsByRun(ctx context.Context, runID string) ([]*seatsync.Listing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, source_url, price, currency, section, seat_row, quantity, retrieved_at
		FROM listings
		WHERE run_id = ?
		ORDER BY source, section, seat_row
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*seatsync.Listing
	for rows.Next() {
		var listing seatsync.Listing
		var source string
		var price, currency sql.NullString
		var retrievedAt string

		if err := rows.Scan(&source, &listing.SourceURL, &price, &currency,
			&listing.Section, &listing.Row, &listing.Quantity, &retrievedAt); err != nil {
			return nil, err
		}
		listing.Source = seatsync.Source(source)

		if price.Valid {
			amount, err := decimal.NewFromString(price.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse price: %w", err)
			}
			listing.Price = &seatsync.Price{Amount: amount, Currency: currency.String}
		}

		listing.RetrievedAt, err = time.Parse(time.RFC3339, retrievedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse retrieved_at: %w", err)
		}
		listings = append(listings, &listing)
	}
	return listings, rows.Err()
}
