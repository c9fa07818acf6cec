package mock

import seatsync "github.com/elliotttmiller/seatsync"

var _ seatsync.ChallengeDetector = (*ChallengeDetector)(nil)

// ChallengeDetector is a mock implementation of seatsync.ChallengeDetector.
type ChallengeDetector struct {
	ChallengedFn func(page *seatsync.RawPage) bool
}

func (d *ChallengeDetector) Challenged(page *seatsync.RawPage) bool {
	return d.ChallengedFn(page)
}
