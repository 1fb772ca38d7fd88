package migrate

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/agentstation/utc"
)

// Result is the summary of a migration run.
type Result struct {
	RunID      string
	DryRun     bool
	StartedAt  utc.Time
	FinishedAt utc.Time

	// Counts per outcome kind.
	Counts map[reconciler.Kind]int

	// Entries read from the source, before offset and limit.
	SourceEntries int

	// Valid, non-duplicate records that went through reconciliation.
	Processed int

	// Breakdown of skipped entries that never reached the destination.
	Invalid        int
	DuplicateInput int

	// Destination records sharing a URL with another, left untouched.
	UnmanagedDuplicates int

	// Problems lists every failure and every invalid source entry.
	Problems []Problem

	// Interrupted is set when the run stopped early; resume with NextOffset.
	Interrupted bool
	NextOffset  int
}

// Problem is one failed or rejected source entry.
type Problem struct {
	Index  int
	URL    string
	Kind   reconciler.Kind
	Reason string
}

// Where identifies the entry by URL, or by source position when it has none.
func (p Problem) Where() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf("entry #%d", p.Index)
}

// NewResult creates an empty result.
func NewResult(runID string, dryRun bool) *Result {
	return &Result{
		RunID:     runID,
		DryRun:    dryRun,
		StartedAt: utc.Now(),
		Counts:    make(map[reconciler.Kind]int, len(reconciler.Kinds)),
	}
}

// Record adds one outcome to the result.
func (r *Result) Record(out reconciler.Outcome) {
	r.Counts[out.Kind]++
	switch {
	case out.Kind == reconciler.KindFailed:
		r.Problems = append(r.Problems, Problem{Index: out.Index, URL: out.URL, Kind: out.Kind, Reason: out.Reason})
	case out.Kind == reconciler.KindSkipped && out.Err != nil:
		r.Invalid++
		r.Problems = append(r.Problems, Problem{Index: out.Index, URL: out.URL, Kind: out.Kind, Reason: out.Reason})
	}
}

// Finish stamps the end time.
func (r *Result) Finish() {
	r.FinishedAt = utc.Now()
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Count returns the number of outcomes of kind.
func (r *Result) Count(kind reconciler.Kind) int {
	return r.Counts[kind]
}

// Total returns the number of outcomes recorded.
func (r *Result) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// HasFailures reports whether any record failed.
func (r *Result) HasFailures() bool {
	return r.Counts[reconciler.KindFailed] > 0
}

// Summary returns a one-line human-readable summary.
func (r *Result) Summary() string {
	parts := make([]string, 0, len(reconciler.Kinds))
	for _, kind := range reconciler.Kinds {
		if kind == reconciler.KindDryRunPlanned && !r.DryRun {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d %s", r.Counts[kind], strings.ReplaceAll(kind.String(), "_", " ")))
	}

	summary := strings.Join(parts, ", ")
	if r.DryRun {
		summary += " (dry run)"
	}
	if r.Interrupted {
		summary += fmt.Sprintf(" (interrupted, resume with --offset %d)", r.NextOffset)
	}
	return summary
}
