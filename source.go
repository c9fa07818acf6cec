package seatsync

// SourceConfig supplies the per-marketplace knowledge the engine
// depends on but does not own: how to build a search URL for a query
// and the ordered extraction pattern chain for the marketplace's
// markup. Configs are read-only and safely shared across concurrent
// scrapers.
type SourceConfig struct {
	ID   Source
	Name string

	// SearchURL builds the listing-search URL for a query.
	SearchURL func(query string) string

	// Patterns is the fallback chain, most-specific pattern first.
	Patterns []ExtractionPattern
}

// Validate returns an error if the config is incomplete.
func (c *SourceConfig) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "source config ID required")
	}
	if c.SearchURL == nil {
		return Errorf(EINVALID, "source config for %s missing search URL builder", c.ID)
	}
	if len(c.Patterns) == 0 {
		return Errorf(EINVALID, "source config for %s missing extraction patterns", c.ID)
	}
	return nil
}
