package suggest

import (
	"fmt"
	"io"

	"github.com/agentstation/marksync/internal/cmd/alerts"
	"github.com/agentstation/marksync/internal/cmd/output"
	"github.com/agentstation/marksync/internal/cmd/table"
	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/suggest"
)

type summary struct {
	Total       int                      `json:"total" yaml:"total"`
	Guessed     int                      `json:"guessed" yaml:"guessed"`
	Moved       int                      `json:"moved" yaml:"moved"`
	Unmatched   int                      `json:"unmatched" yaml:"unmatched"`
	Missing     int                      `json:"missing_collection" yaml:"missing_collection"`
	Failed      int                      `json:"failed" yaml:"failed"`
	Interrupted bool                     `json:"interrupted" yaml:"interrupted"`
	Unknown     []bookmarks.CollectionID `json:"unknown_collections" yaml:"unknown_collections"`
	Suggestions []table.SuggestionRow    `json:"suggestions" yaml:"suggestions"`
}

func printResult(w io.Writer, format string, rows []table.SuggestionRow, res *suggest.Result) error {
	f := output.Format(format)
	if f == output.FormatJSON || f == output.FormatYAML {
		if rows == nil {
			rows = []table.SuggestionRow{}
		}
		return output.NewFormatter(f).Format(w, summary{
			Total:       res.Total,
			Guessed:     res.Guessed,
			Moved:       res.Moved,
			Unmatched:   res.Unmatched,
			Missing:     res.Missing,
			Failed:      res.Failed,
			Interrupted: res.Interrupted,
			Unknown:     res.Unknown,
			Suggestions: rows,
		})
	}

	formatter := output.NewFormatter(output.FormatTable)
	if len(rows) > 0 {
		if err := formatter.Format(w, table.Suggestions(rows)); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	if err := formatter.Format(w, table.SuggestSummary(res)); err != nil {
		return err
	}
	fmt.Fprintln(w)
	_, err := status(res).WriteTo(w)
	return err
}

// status is the closing line of a suggest run.
func status(res *suggest.Result) *alerts.Alert {
	var alert *alerts.Alert
	switch {
	case res.Interrupted:
		alert = alerts.NewWarning("Suggest interrupted: " + res.Summary())
	case res.Failed > 0:
		alert = alerts.NewError("Suggest finished with failures: " + res.Summary())
	case res.Missing > 0:
		alert = alerts.NewWarning("Suggest finished: " + res.Summary())
	default:
		alert = alerts.NewSuccess("Suggest finished: " + res.Summary())
	}
	for _, id := range res.Unknown {
		alert.WithDetails(fmt.Sprintf("collection %s is named by a rule but does not exist in Raindrop", id))
	}
	for _, p := range res.Problems {
		alert.WithDetails(fmt.Sprintf("failed to move %d (%s): %s", p.ID, p.URL, p.Reason))
	}
	return alert
}
