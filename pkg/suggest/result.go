package suggest

import (
	"fmt"

	"github.com/agentstation/marksync/pkg/bookmarks"
)

// Status is what happened to one suggestion.
type Status string

// Suggestion statuses.
const (
	StatusSuggested Status = "suggested"  // report only
	StatusMoved     Status = "moved"      // applied
	StatusMissing   Status = "missing"    // rule target does not exist on the destination
	StatusUnmatched Status = "unmatched"  // no rule; name-only proposal
	StatusFailed    Status = "failed"     // move call failed
	StatusInPlace   Status = "in_place"   // already in the target collection
)

// Result summarizes a suggest run.
type Result struct {
	Total     int
	Guessed   int
	Moved     int
	Unmatched int
	Missing   int
	Failed    int

	// Interrupted is set when the context ended the run early.
	Interrupted bool

	// Unknown lists rule targets that do not exist on the destination.
	Unknown []bookmarks.CollectionID

	Problems []Problem
}

// Problem is one failed move.
type Problem struct {
	ID     int64
	URL    string
	Reason string
}

// Record counts one suggestion with its status.
func (r *Result) Record(s Suggestion, status Status) {
	r.Total++
	if s.Guessed() {
		r.Guessed++
	} else {
		r.Unmatched++
	}
	switch status {
	case StatusMoved:
		r.Moved++
	case StatusMissing:
		r.Missing++
	case StatusFailed:
		r.Failed++
	}
}

// Summary returns a one-line summary.
func (r *Result) Summary() string {
	s := fmt.Sprintf("%d total, %d guessed, %d moved, %d unmatched", r.Total, r.Guessed, r.Moved, r.Unmatched)
	if r.Missing > 0 {
		s += fmt.Sprintf(", %d with missing collection", r.Missing)
	}
	if r.Failed > 0 {
		s += fmt.Sprintf(", %d failed", r.Failed)
	}
	if r.Interrupted {
		s += " (interrupted)"
	}
	return s
}
