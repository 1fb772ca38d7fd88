package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/marksync/pkg/migrate"
	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/agentstation/marksync/pkg/rules"
	"github.com/agentstation/marksync/pkg/suggest"
)

// MigrationSummary renders the per-kind counts of a migration.
func MigrationSummary(res *migrate.Result) Data {
	rows := make([][]string, 0, len(reconciler.Kinds)+4)
	for _, kind := range reconciler.Kinds {
		if kind == reconciler.KindDryRunPlanned && !res.DryRun {
			continue
		}
		rows = append(rows, []string{kind.String(), strconv.Itoa(res.Count(kind))})
	}
	rows = append(rows,
		[]string{"invalid_entries", strconv.Itoa(res.Invalid)},
		[]string{"duplicates_in_source", strconv.Itoa(res.DuplicateInput)},
		[]string{"unmanaged_duplicates", strconv.Itoa(res.UnmanagedDuplicates)},
		[]string{"source_entries", strconv.Itoa(res.SourceEntries)},
	)
	return Data{
		Headers:         Headers("outcome", "count"),
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// MigrationProblems lists every failed or rejected entry.
func MigrationProblems(res *migrate.Result) Data {
	rows := make([][]string, 0, len(res.Problems))
	for _, p := range res.Problems {
		rows = append(rows, []string{strconv.Itoa(p.Index), p.Where(), p.Kind.String(), p.Reason})
	}
	return Data{
		Headers:         Headers("index", "bookmark", "kind", "reason"),
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
}

// SuggestSummary renders the statistics of a suggest run.
func SuggestSummary(res *suggest.Result) Data {
	rows := [][]string{
		{"total", strconv.Itoa(res.Total)},
		{"guessed", strconv.Itoa(res.Guessed)},
		{"moved", strconv.Itoa(res.Moved)},
		{"unmatched", strconv.Itoa(res.Unmatched)},
		{"missing_collection", strconv.Itoa(res.Missing)},
		{"failed", strconv.Itoa(res.Failed)},
	}
	return Data{
		Headers:         Headers("statistic", "count"),
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// SuggestionRow is one classified record.
type SuggestionRow struct {
	ID     int64          `json:"id" yaml:"id"`
	URL    string         `json:"url" yaml:"url"`
	Tags   []string       `json:"tags" yaml:"tags"`
	Target string         `json:"target" yaml:"target"`
	Status suggest.Status `json:"status" yaml:"status"`
}

// Suggestions renders classified records.
func Suggestions(rows []SuggestionRow) Data {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{strconv.FormatInt(r.ID, 10), r.URL, strings.Join(r.Tags, " "), r.Target, string(r.Status)})
	}
	return Data{
		Headers:         Headers("id", "url", "tags", "target", "status"),
		Rows:            out,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}

// Rules renders a rule set in priority order.
func Rules(rs rules.Rules) Data {
	rows := make([][]string, 0, len(rs))
	for i, r := range rs {
		rows = append(rows, []string{strconv.Itoa(i + 1), r.Name, r.Collection.String(), strings.Join(r.Tags, ", ")})
	}
	return Data{
		Headers:         Headers("priority", "name", "collection_id", "tags"),
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignRight, AlignLeft},
	}
}
