package migrate

import (
	"fmt"
	"io"

	"github.com/agentstation/marksync/internal/cmd/alerts"
	"github.com/agentstation/marksync/internal/cmd/output"
	"github.com/agentstation/marksync/internal/cmd/table"
	"github.com/agentstation/marksync/pkg/migrate"
	"github.com/agentstation/marksync/pkg/reconciler"
)

// summary is the machine-readable form of a migration result.
type summary struct {
	RunID               string         `json:"run_id" yaml:"run_id"`
	DryRun              bool           `json:"dry_run" yaml:"dry_run"`
	Counts              map[string]int `json:"counts" yaml:"counts"`
	SourceEntries       int            `json:"source_entries" yaml:"source_entries"`
	Processed           int            `json:"processed" yaml:"processed"`
	InvalidEntries      int            `json:"invalid_entries" yaml:"invalid_entries"`
	DuplicatesInSource  int            `json:"duplicates_in_source" yaml:"duplicates_in_source"`
	UnmanagedDuplicates int            `json:"unmanaged_duplicates" yaml:"unmanaged_duplicates"`
	Interrupted         bool           `json:"interrupted" yaml:"interrupted"`
	NextOffset          int            `json:"next_offset" yaml:"next_offset"`
	Problems            []problem      `json:"problems" yaml:"problems"`
}

type problem struct {
	Index  int    `json:"index" yaml:"index"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Kind   string `json:"kind" yaml:"kind"`
	Reason string `json:"reason" yaml:"reason"`
}

func newSummary(res *migrate.Result) summary {
	s := summary{
		RunID:               res.RunID,
		DryRun:              res.DryRun,
		Counts:              make(map[string]int, len(reconciler.Kinds)),
		SourceEntries:       res.SourceEntries,
		Processed:           res.Processed,
		InvalidEntries:      res.Invalid,
		DuplicatesInSource:  res.DuplicateInput,
		UnmanagedDuplicates: res.UnmanagedDuplicates,
		Interrupted:         res.Interrupted,
		NextOffset:          res.NextOffset,
		Problems:            make([]problem, 0, len(res.Problems)),
	}
	for _, kind := range reconciler.Kinds {
		s.Counts[kind.String()] = res.Count(kind)
	}
	for _, p := range res.Problems {
		s.Problems = append(s.Problems, problem{Index: p.Index, URL: p.URL, Kind: p.Kind.String(), Reason: p.Reason})
	}
	return s
}

func printResult(w io.Writer, format string, res *migrate.Result) error {
	f := output.Format(format)
	if f == output.FormatJSON || f == output.FormatYAML {
		return output.NewFormatter(f).Format(w, newSummary(res))
	}

	formatter := output.NewFormatter(output.FormatTable)
	if err := formatter.Format(w, table.MigrationSummary(res)); err != nil {
		return err
	}
	if len(res.Problems) > 0 {
		fmt.Fprintf(w, "\nProblems (%d):\n", len(res.Problems))
		if err := formatter.Format(w, table.MigrationProblems(res)); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)
	_, err := status(res).WriteTo(w)
	return err
}

// status is the closing line of a migration.
func status(res *migrate.Result) *alerts.Alert {
	var alert *alerts.Alert
	switch {
	case res.Interrupted:
		alert = alerts.NewWarning("Migration interrupted: " + res.Summary())
	case res.HasFailures():
		alert = alerts.NewError("Migration finished with failures: " + res.Summary())
	default:
		alert = alerts.NewSuccess("Migration finished: " + res.Summary())
	}
	if res.UnmanagedDuplicates > 0 {
		alert.WithDetails(fmt.Sprintf("%d Raindrop bookmarks share a URL with another and were left alone", res.UnmanagedDuplicates))
	}
	return alert
}
