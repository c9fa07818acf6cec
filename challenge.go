package seatsync

// ChallengeDetector inspects a fetch response for signs of active bot
// mitigation (interstitial verification pages, block pages).
// Implementations inspect only a bounded prefix of the body: challenge
// markers reliably appear near the top of the document, so the bound
// is a performance decision, not a correctness shortcut.
type ChallengeDetector interface {
	Challenged(page *RawPage) bool
}
