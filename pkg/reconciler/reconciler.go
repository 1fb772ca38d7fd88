// Package reconciler decides and executes the destination write for one
// source record: create it, skip it, merge it into the existing record or
// overwrite the existing record. In dry-run mode the same decision is made
// and reported without any write.
package reconciler

import (
	"context"
	"fmt"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/logging"
	"github.com/agentstation/marksync/pkg/router"
)

// Writer performs destination mutations.
type Writer interface {
	Create(ctx context.Context, draft bookmarks.Draft) (bookmarks.Existing, error)
	Update(ctx context.Context, id int64, patch bookmarks.Patch) (bookmarks.Existing, error)
}

// Reconciler executes reconciliation decisions against a Writer.
type Reconciler struct {
	writer Writer
	opts   Options
	pacer  *Pacer
}

// New creates a reconciler. The writer may be nil only in dry-run mode.
func New(writer Writer, opts ...Option) (*Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if writer == nil && !options.DryRun {
		return nil, &errors.ValidationError{
			Field:   "writer",
			Message: "cannot be nil outside dry-run",
		}
	}
	return &Reconciler{
		writer: writer,
		opts:   *options,
		pacer:  options.pacer,
	}, nil
}

// Options returns the effective options.
func (r *Reconciler) Options() Options {
	return r.opts
}

// Reconcile processes one valid candidate. Write failures are returned as a
// Failed outcome, never as an error, so one bad record cannot stop a run.
func (r *Reconciler) Reconcile(ctx context.Context, c bookmarks.Candidate, d router.Decision, existing bookmarks.Existing) Outcome {
	action := Plan(existing, r.opts)
	collection := target(action, d, existing)
	logger := logging.FromContext(ctx).With().
		Str("url", c.Record.URL).
		Str("action", action.String()).
		Logger()

	var patch bookmarks.Patch
	switch action {
	case ActionMerge:
		patch = MergePatch(c.Record, d, existing)
	case ActionOverwrite:
		patch = OverwritePatch(c.Record, d)
	}
	unchanged := action.Updates() && patch.Empty()

	if r.opts.DryRun {
		logger.Debug().Int64("collection", int64(collection)).Msg("Planned")
		out := Outcome{
			Index:      c.Index,
			Kind:       KindDryRunPlanned,
			Action:     action,
			URL:        c.Record.URL,
			ID:         existing.ID,
			Collection: collection,
			Reason:     describe(action, collection),
			Changed:    action.Mutates() && !unchanged,
		}
		if unchanged {
			out.Reason = "no changes"
		}
		return out
	}

	switch action {
	case ActionSkip:
		return Outcome{
			Index:      c.Index,
			Kind:       KindSkipped,
			Action:     action,
			URL:        c.Record.URL,
			ID:         existing.ID,
			Collection: collection,
			Reason:     "already exists",
		}

	case ActionCreate:
		draft := bookmarks.NewDraft(c.Record, d.Collection, d.Tags)
		created, err := r.mutate(ctx, func() (bookmarks.Existing, error) {
			return r.writer.Create(ctx, draft)
		})
		if err != nil {
			return Failed(c, action, collection, errors.WrapTransient("create", c.Record.URL, err))
		}
		return Outcome{
			Index:      c.Index,
			Kind:       KindCreated,
			Action:     action,
			URL:        c.Record.URL,
			ID:         created.ID,
			Collection: collection,
			Changed:    true,
		}

	default:
		out := Outcome{
			Index:      c.Index,
			Kind:       KindMerged,
			Action:     action,
			URL:        c.Record.URL,
			ID:         existing.ID,
			Collection: collection,
		}
		if unchanged {
			out.Reason = "no changes"
			return out
		}
		if _, err := r.mutate(ctx, func() (bookmarks.Existing, error) {
			return r.writer.Update(ctx, existing.ID, patch)
		}); err != nil {
			return Failed(c, action, collection, errors.WrapTransient("update", c.Record.URL, err))
		}
		out.Changed = true
		return out
	}
}

// mutate runs one paced write.
func (r *Reconciler) mutate(ctx context.Context, write func() (bookmarks.Existing, error)) (bookmarks.Existing, error) {
	if err := r.pacer.Wait(ctx); err != nil {
		return bookmarks.Existing{}, err
	}
	defer r.pacer.Done()
	return write()
}

func describe(action Action, collection bookmarks.CollectionID) string {
	switch action {
	case ActionSkip:
		return "would skip existing record"
	case ActionMerge:
		return fmt.Sprintf("would merge into existing record in collection %s", collection)
	case ActionOverwrite:
		return fmt.Sprintf("would overwrite existing record into collection %s", collection)
	default:
		return fmt.Sprintf("would create in collection %s", collection)
	}
}
