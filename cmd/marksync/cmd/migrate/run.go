package migrate

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/agentstation/marksync"
	"github.com/agentstation/marksync/cmd/application"
	"github.com/agentstation/marksync/internal/metrics"
	"github.com/agentstation/marksync/internal/report"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/agentstation/marksync/pkg/rules"
)

// Run executes one migration with the given flags and prints the result.
func Run(ctx context.Context, app application.Application, flags *Flags, w io.Writer) (err error) {
	logger := app.Logger()

	// Rules are checked before anything touches a service.
	rs, err := rules.Load(flags.CollectionMap)
	if err != nil {
		return err
	}

	path := flags.PinboardJSON
	if flags.FetchPinboard {
		path = ""
	}
	src, err := app.Source(path, flags.PinboardToken)
	if err != nil {
		return err
	}
	dst, err := app.Destination(flags.RaindropToken)
	if err != nil {
		return err
	}

	if !flags.DryRun {
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
		marksync.WithSource(src),
		marksync.WithDestination(dst),
		marksync.WithRules(rs),
		marksync.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	runID := uuid.NewString()

	if flags.Report != "" {
		rw, rerr := report.Create(flags.Report, runID)
		if rerr != nil {
			return rerr
		}
		client.OnOutcome(rw.Outcome)
		defer func() {
			if cerr := rw.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}

	var recorder *metrics.Recorder
	if flags.MetricsFile != "" {
		recorder = metrics.New()
		client.OnOutcome(recorder.Outcome)
	}

	res, err := client.Migrate(ctx, flags.Options(runID)...)
	if err != nil {
		return err
	}

	if recorder != nil {
		recorder.Migration(res)
		if err := recorder.WriteFile(flags.MetricsFile); err != nil {
			logger.Warn().Err(err).Msg("Failed to write metrics file")
		}
	}

	if err := printResult(w, app.OutputFormat(), res); err != nil {
		return err
	}

	switch {
	case res.Interrupted:
		return fmt.Errorf("%w: resume with --offset %d", errors.ErrCanceled, res.NextOffset)
	case res.HasFailures():
		return fmt.Errorf("%d bookmarks failed to migrate", res.Count(reconciler.KindFailed))
	}
	return nil
}
