package seatsync

// DisguiseProfile is a browser fingerprint/header combination presented
// to a source to reduce automated-request detection. Profiles are
// drawn immutably from a static pool and never mutated after creation.
type DisguiseProfile struct {
	// Identity is the browser identity string (User-Agent).
	Identity string
	// Headers is the header set coherent with Identity.
	Headers map[string]string
}

// DisguiseRotator supplies a pseudo-random disguise profile per
// request. Draws are independent across concurrent scrapers: no global
// sequencing, since correlated fingerprints across simultaneous
// requests increase detectability.
type DisguiseRotator interface {
	Next() *DisguiseProfile
}
