package marksync

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/logging"
	"github.com/agentstation/marksync/pkg/migrate"
	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/agentstation/marksync/pkg/resolver"
	"github.com/agentstation/marksync/pkg/router"
)

// Migrate copies the source bookmarks to the destination.
//
// Records are processed one at a time in source order. Per-record problems
// (bad source entries, failed lookups or writes) are recorded in the result
// and never stop the run. Only configuration errors and a failed source
// fetch are returned as errors. When ctx is canceled the run stops between
// records and the result reports Interrupted with the offset to resume from.
func (c *Client) Migrate(ctx context.Context, opts ...migrate.Option) (*migrate.Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse and validate options
	options := migrate.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if c.options.source == nil {
		return nil, errors.NewConfigError("client", "a source is required to migrate", nil)
	}

	// Step 2: Tag the run
	runID := options.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = c.runContext(ctx, runID, "migrate")
	logger := logging.FromContext(ctx)

	// Step 3: Build the engine
	res := resolver.New(c.options.destination)
	rec, err := reconciler.New(c.options.destination, options.ReconcilerOptions()...)
	if err != nil {
		return nil, errors.NewConfigError("options", err.Error(), err)
	}

	// Step 4: Fetch source candidates
	candidates, err := c.options.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	result := migrate.NewResult(runID, options.DryRun)
	result.SourceEntries = len(candidates)
	result.NextOffset = len(candidates)

	logger.Info().
		Int("entries", len(candidates)).
		Int("rules", len(c.options.rules)).
		Int("offset", options.Offset).
		Int("limit", options.Limit).
		Bool("dry_run", options.DryRun).
		Bool("merge_tags", options.MergeTags).
		Bool("skip_existing", options.SkipExisting).
		Msg("Starting migration")

	// Step 5: Process candidates one by one
	seen := seenBefore(candidates, options.Offset)
	routing := options.RouterOptions()

	for i := options.Offset; i < len(candidates); i++ {
		if options.Limit > 0 && result.Processed >= options.Limit {
			result.NextOffset = i
			break
		}
		if ctx.Err() != nil {
			result.Interrupted = true
			result.NextOffset = i
			break
		}

		cand := candidates[i]
		if !cand.Valid() {
			c.emit(ctx, result, reconciler.Invalid(cand))
			continue
		}
		if options.LowercaseTags {
			cand.Record.Tags = bookmarks.NormalizeTags(cand.Record.Tags, true)
		}
		if _, dup := seen[cand.Record.URL]; dup {
			result.DuplicateInput++
			c.emit(ctx, result, reconciler.DuplicateInSource(cand))
			continue
		}
		seen[cand.Record.URL] = struct{}{}

		out := c.migrateOne(ctx, res, rec, cand, routing)
		result.Processed++
		c.emit(ctx, result, out)

		// A write cut short by cancellation is retried on resume.
		if out.Kind == reconciler.KindFailed && ctx.Err() != nil {
			result.Interrupted = true
			result.NextOffset = i
			break
		}
	}

	// Step 6: Finish
	result.UnmanagedDuplicates = res.Duplicates()
	result.Finish()

	var event *zerolog.Event
	if result.HasFailures() || result.Interrupted {
		event = logger.Warn()
	} else {
		event = logger.Info()
	}
	event.
		Int("created", result.Count(reconciler.KindCreated)).
		Int("merged", result.Count(reconciler.KindMerged)).
		Int("skipped", result.Count(reconciler.KindSkipped)).
		Int("planned", result.Count(reconciler.KindDryRunPlanned)).
		Int("failed", result.Count(reconciler.KindFailed)).
		Int("unmanaged_duplicates", result.UnmanagedDuplicates).
		Dur("elapsed", result.Duration()).
		Msg("Migration finished: " + result.Summary())

	return result, nil
}

// migrateOne routes, looks up and reconciles one valid candidate.
func (c *Client) migrateOne(ctx context.Context, res *resolver.Resolver, rec *reconciler.Reconciler, cand bookmarks.Candidate, routing router.Options) reconciler.Outcome {
	decision := router.Route(cand.Record, c.options.rules, routing)

	existing, err := res.Lookup(ctx, cand.Record.URL)
	if err != nil {
		return reconciler.Failed(cand, reconciler.ActionNone, decision.Collection, err)
	}
	return rec.Reconcile(ctx, cand, decision, existing)
}

// emit records an outcome, logs it and notifies hooks.
func (c *Client) emit(ctx context.Context, result *migrate.Result, out reconciler.Outcome) {
	result.Record(out)
	logOutcome(logging.FromContext(ctx), out)
	c.hooks.outcome(out)
}

func logOutcome(logger *zerolog.Logger, out reconciler.Outcome) {
	var event *zerolog.Event
	switch {
	case out.Kind == reconciler.KindFailed:
		event = logger.Error().Err(out.Err)
	case out.Err != nil:
		event = logger.Warn().Err(out.Err)
	default:
		event = logger.Info()
	}
	event.
		Int("index", out.Index).
		Str("kind", out.Kind.String()).
		Str("action", out.Action.String()).
		Str("url", out.URL).
		Int64("id", out.ID).
		Int64("collection", int64(out.Collection)).
		Str("reason", out.Reason).
		Msg("Processed bookmark")
}

// runContext attaches the client logger and run id to ctx.
func (c *Client) runContext(ctx context.Context, runID, operation string) context.Context {
	if c.options.logger != nil {
		ctx = logging.WithLogger(ctx, c.options.logger)
	}
	ctx = logging.WithRunID(ctx, runID)
	return logging.WithOperation(ctx, operation)
}

// seenBefore collects the URLs of valid entries before offset, so a resumed
// run still reports repeats of them as duplicates in the source.
func seenBefore(candidates []bookmarks.Candidate, offset int) map[string]struct{} {
	seen := make(map[string]struct{}, len(candidates))
	for _, cand := range candidates[:min(offset, len(candidates))] {
		if cand.Valid() {
			seen[cand.Record.URL] = struct{}{}
		}
	}
	return seen
}
