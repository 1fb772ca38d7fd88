package marksync

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/logging"
	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/agentstation/marksync/pkg/suggest"
)

// Suggest proposes a collection for every record of a destination
// collection (Unsorted by default) using the client rules.
//
// With suggest.WithApply, records whose rule target exists on the
// destination are moved there, one paced call at a time. Records no rule
// matches only get a proposed collection name and are never moved; neither
// are records whose rule points at a collection the destination does not
// have.
func (c *Client) Suggest(ctx context.Context, opts ...suggest.Option) (*suggest.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	options := suggest.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	ctx = c.runContext(ctx, uuid.NewString(), "suggest")
	logger := logging.FromContext(ctx)
	dst := c.options.destination

	// Known collections. Required to apply; best effort otherwise.
	known, err := knownCollections(ctx, dst)
	if err != nil {
		if options.Move {
			return nil, err
		}
		logger.Warn().Err(err).Msg("Could not list collections; missing rule targets will not be reported")
	}

	// Moving records changes the pages of the listed collection, so the
	// whole listing is read before anything moves.
	records, err := suggest.Collect(suggest.Pages(ctx, dst, options.Collection, options.Pages))
	result := &suggest.Result{}
	if err != nil {
		if ctx.Err() == nil {
			return nil, err
		}
		result.Interrupted = true
		return result, nil
	}

	logger.Info().
		Int("records", len(records)).
		Str("collection", options.Collection.String()).
		Bool("apply", options.Move).
		Msg("Fetched records to classify")

	pacer := reconciler.NewPacer(options.Pacing)
	for s := range suggest.Suggest(records, c.options.rules, options.Collection) {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}

		status := c.classify(s, known, options.Move)
		if status == suggest.StatusMoved {
			if err := c.move(ctx, pacer, s); err != nil {
				status = suggest.StatusFailed
				result.Problems = append(result.Problems, suggest.Problem{ID: s.Record.ID, URL: s.Record.URL, Reason: err.Error()})
				logger.Error().Err(err).Int64("id", s.Record.ID).Str("url", s.Record.URL).Msg("Failed to move record")
			}
		}
		if status == suggest.StatusMissing && !slices.Contains(result.Unknown, s.Collection) {
			result.Unknown = append(result.Unknown, s.Collection)
		}

		result.Record(s, status)
		logger.Info().
			Int64("id", s.Record.ID).
			Str("url", s.Record.URL).
			Strs("tags", s.Record.Tags.Strings()).
			Str("target", s.Label()).
			Str("status", string(status)).
			Msg("Classified record")
		c.hooks.suggestion(s, status)
	}

	logger.Info().Msg("Suggest finished: " + result.Summary())
	return result, nil
}

// classify decides the status of a suggestion before any move.
func (c *Client) classify(s suggest.Suggestion, known map[bookmarks.CollectionID]bool, apply bool) suggest.Status {
	switch {
	case !s.Guessed():
		return suggest.StatusUnmatched
	case s.Collection == s.Record.Collection:
		return suggest.StatusInPlace
	case known != nil && !known[s.Collection]:
		return suggest.StatusMissing
	case !apply:
		return suggest.StatusSuggested
	default:
		return suggest.StatusMoved
	}
}

func (c *Client) move(ctx context.Context, pacer *reconciler.Pacer, s suggest.Suggestion) error {
	if err := pacer.Wait(ctx); err != nil {
		return err
	}
	defer pacer.Done()
	return errors.WrapTransient("move", s.Record.URL, c.options.destination.Move(ctx, s.Record.ID, s.Collection))
}

func knownCollections(ctx context.Context, l suggest.Lister) (map[bookmarks.CollectionID]bool, error) {
	cols, err := l.Collections(ctx)
	if err != nil {
		return nil, errors.WrapTransient("collections", "", err)
	}
	known := make(map[bookmarks.CollectionID]bool, len(cols))
	for _, col := range cols {
		known[col.ID] = true
	}
	return known, nil
}
