package hashcrack

import "time"

// SearchResult is produced exactly once per search.
//
// With more than one worker the reported candidate is whichever match the
// coordinator observes first, so among colliding candidates the choice is
// not deterministic across runs, and Attempts is approximate. A single
// worker always reports the shortest, lexicographically smallest match with
// an exact attempt count.
type SearchResult struct {
	Found     bool          `json:"found"`
	Candidate string        `json:"candidate,omitempty"`
	Attempts  uint64        `json:"attempts"`
	Exact     bool          `json:"exact"`
	Elapsed   time.Duration `json:"elapsed"`
	// Incomplete marks a not-found result that did not cover the whole
	// keyspace, because units were abandoned after worker failures or the
	// caller's context ended first.
	Incomplete bool     `json:"incomplete,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}
