// Package seatsync provides the scraping orchestration engine for
// ticket-resale marketplaces. It concurrently retrieves listing data
// from multiple anti-bot-protected sources, survives transient
// challenge responses with backoff and disguise rotation, tolerates
// partial failures across sources, and returns a normalized aggregate
// result.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or concern
// (e.g., rod/, http/, goquery/, sqlite/).
package seatsync
