// Package suggest provides the suggest command.
package suggest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/agentstation/marksync"
	"github.com/agentstation/marksync/cmd/application"
	"github.com/agentstation/marksync/internal/cmd/table"
	"github.com/agentstation/marksync/internal/metrics"
	"github.com/agentstation/marksync/internal/report"
	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/constants"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/rules"
	"github.com/agentstation/marksync/pkg/suggest"
)

// Flags holds the suggest command flags.
type Flags struct {
	RaindropToken string
	CollectionMap string
	Collection    int64
	PerPage       int
	StartPage     int
	MaxPages      int
	Apply         bool
	Sleep         time.Duration
	Report        string
	MetricsFile   string
}

// NewCommand creates the suggest command using the application context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "suggest",
		GroupID: "core",
		Short:   "Propose collections for unsorted Raindrop bookmarks",
		Args:    cobra.NoArgs,
		Long: `Suggest lists the bookmarks of a Raindrop collection (Unsorted by default)
and matches their tags against the rules in --collection-map.

Without --apply it only reports the proposed collection of every bookmark.
With --apply, bookmarks are moved to the collection their rule names, one
paced call at a time. Bookmarks no rule matches get a proposed collection
name (first tag, else the site host) and are never moved.`,
		Example: `  marksync suggest --collection-map rules.yaml
  marksync suggest --collection-map rules.yaml --max-pages 2 -o json
  marksync suggest --collection-map rules.yaml --apply --sleep 500ms`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&flags.RaindropToken, "raindrop-token", "", "Raindrop.io test token (default $RAINDROP_TOKEN)")
	fs.StringVar(&flags.CollectionMap, "collection-map", "", "rules file mapping tags to collection ids (.json, .yaml or .toml)")
	fs.Int64Var(&flags.Collection, "collection", int64(bookmarks.CollectionUnsorted), "collection to examine (-1 is Unsorted)")
	fs.IntVar(&flags.PerPage, "per-page", constants.DefaultPageSize, "bookmarks per page (at most 50)")
	fs.IntVar(&flags.StartPage, "start-page", 0, "first page to read (zero-based)")
	fs.IntVar(&flags.MaxPages, "max-pages", 0, "read at most this many pages (0 is all)")
	fs.BoolVar(&flags.Apply, "apply", false, "move bookmarks to their suggested collection")
	fs.DurationVar(&flags.Sleep, "sleep", constants.DefaultSuggestPacing, "delay between moves")
	fs.StringVar(&flags.Report, "report", "", "write one JSON line per bookmark to this file")
	fs.StringVar(&flags.MetricsFile, "metrics-file", "", "write run metrics in Prometheus textfile format")
	_ = cmd.MarkFlagRequired("collection-map")

	return cmd
}

// Run executes one suggest pass with the given flags and prints the result.
func Run(ctx context.Context, app application.Application, flags *Flags, w io.Writer) (err error) {
	logger := app.Logger()

	rs, err := rules.Load(flags.CollectionMap)
	if err != nil {
		return err
	}
	if len(rs) == 0 {
		return errors.NewConfigError("rules", "no rules in "+flags.CollectionMap, nil)
	}
	if flags.Collection == int64(bookmarks.CollectionAll) {
		return errors.NewConfigError("flags", "--collection 0 is not a collection", nil)
	}

	dst, err := app.Destination(flags.RaindropToken)
	if err != nil {
		return err
	}

	if flags.Apply {
		lock, err := app.Lock()
		if err != nil {
			return err
		}
		defer func() {
			if rerr := lock.Release(); rerr != nil {
				logger.Warn().Err(rerr).Msg("Failed to release run lock")
			}
		}()
	}

	client, err := marksync.New(
		marksync.WithDestination(dst),
		marksync.WithRules(rs),
		marksync.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	var rows []table.SuggestionRow
	client.OnSuggestion(func(s suggest.Suggestion, status suggest.Status) {
		rows = append(rows, table.SuggestionRow{
			ID:     s.Record.ID,
			URL:    s.Record.URL,
			Tags:   s.Record.Tags.Strings(),
			Target: s.Label(),
			Status: status,
		})
	})

	if flags.Report != "" {
		rw, rerr := report.Create(flags.Report, uuid.NewString())
		if rerr != nil {
			return rerr
		}
		client.OnSuggestion(rw.Suggestion)
		defer func() {
			if cerr := rw.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}

	var recorder *metrics.Recorder
	if flags.MetricsFile != "" {
		recorder = metrics.New()
		client.OnSuggestion(func(_ suggest.Suggestion, status suggest.Status) {
			recorder.Suggestion(status)
		})
	}

	started := time.Now()
	res, err := client.Suggest(ctx,
		suggest.WithCollection(bookmarks.CollectionID(flags.Collection)),
		suggest.WithPageOptions(suggest.PageOptions{
			PerPage:   flags.PerPage,
			StartPage: flags.StartPage,
			MaxPages:  flags.MaxPages,
		}),
		suggest.WithApply(flags.Apply),
		suggest.WithPacing(flags.Sleep),
	)
	if err != nil {
		return err
	}

	if recorder != nil {
		recorder.Finish(time.Since(started))
		if err := recorder.WriteFile(flags.MetricsFile); err != nil {
			logger.Warn().Err(err).Msg("Failed to write metrics file")
		}
	}

	if err := printResult(w, app.OutputFormat(), rows, res); err != nil {
		return err
	}

	switch {
	case res.Interrupted:
		return fmt.Errorf("%w: suggest stopped early", errors.ErrCanceled)
	case res.Failed > 0:
		return fmt.Errorf("%d bookmarks failed to move", res.Failed)
	}
	return nil
}
