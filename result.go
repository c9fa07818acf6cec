package seatsync

import "time"

// SourceStatus is the terminal outcome of one per-source scraper run.
type SourceStatus string

// Per-source outcomes. Partial means some raw entries failed to
// normalize while others succeeded; it is a degraded success, not a
// failure.
const (
	SourceSuccess SourceStatus = "success"
	SourcePartial SourceStatus = "partial"
	SourceBlocked SourceStatus = "blocked"
	SourceError   SourceStatus = "error"
)

// Succeeded reports whether the status counts as a success for
// aggregate-status purposes.
func (s SourceStatus) Succeeded() bool {
	return s == SourceSuccess || s == SourcePartial
}

// SourceResult is the scraper-scoped outcome for one marketplace.
// Exactly one is produced per requested source per orchestration call,
// regardless of retry count. Detail is present iff Status is not
// SourceSuccess.
type SourceResult struct {
	Source   Source
	Status   SourceStatus
	Listings []*Listing
	Detail   *Error
	Attempts int
}

// AggregateStatus is the overall outcome of one orchestration call.
type AggregateStatus string

// Overall outcomes: success means every source succeeded, partial
// means at least one succeeded and at least one failed, error means
// all failed.
const (
	AggregateSuccess AggregateStatus = "success"
	AggregatePartial AggregateStatus = "partial"
	AggregateError   AggregateStatus = "error"
)

// OverallStatus derives the aggregate status from a set of source
// results per the all/mixed/none rule.
func OverallStatus(results map[Source]*SourceResult) AggregateStatus {
	var succeeded, failed int
	for _, r := range results {
		if r.Status.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	switch {
	case succeeded > 0 && failed == 0:
		return AggregateSuccess
	case succeeded > 0:
		return AggregatePartial
	default:
		return AggregateError
	}
}

// AggregateResult is the call-scoped outcome of one orchestration
// invocation. It is constructed once, immutable thereafter, and owned
// by the caller; it is never persisted by the orchestrator itself.
type AggregateResult struct {
	RunID         string
	Status        AggregateStatus
	Results       map[Source]*SourceResult
	TotalListings int
	Duration      time.Duration
}

// Listings returns all listings flattened across sources, in
// KnownSources order. This is the sole output consumed by downstream
// analytics.
func (r *AggregateResult) Listings() []*Listing {
	var out []*Listing
	for _, src := range KnownSources() {
		if sr, ok := r.Results[src]; ok {
			out = append(out, sr.Listings...)
		}
	}
	return out
}
