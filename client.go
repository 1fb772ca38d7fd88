// Package marksync migrates bookmarks from Pinboard to Raindrop.io.
//
// A Client wires a Source of bookmarks, a Destination service and an
// ordered rule set mapping tags to destination collections. Migrate copies
// every source record to the destination without creating duplicates on
// re-runs; Suggest proposes (and optionally applies) collections for
// records already on the destination.
//
// Example usage:
//
//	src := pinboard.NewFileSource("pinboard_export.json")
//	dst, err := raindrop.New(os.Getenv("RAINDROP_TOKEN"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rs, err := rules.Load("collections.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ms, err := marksync.New(
//	    marksync.WithSource(src),
//	    marksync.WithDestination(dst),
//	    marksync.WithRules(rs),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ms.OnOutcome(func(out reconciler.Outcome) {
//	    fmt.Println(out.Kind, out.URL)
//	})
//
//	result, err := ms.Migrate(ctx, migrate.WithMergeTags(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package marksync

import (
	"context"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/agentstation/marksync/pkg/resolver"
	"github.com/agentstation/marksync/pkg/rules"
	"github.com/agentstation/marksync/pkg/suggest"
)

// Source provides the bookmarks to migrate, in source order.
type Source interface {
	Fetch(ctx context.Context) ([]bookmarks.Candidate, error)
}

// Destination is the bookmark service records are migrated to.
type Destination interface {
	resolver.Finder
	reconciler.Writer
	suggest.Lister
	suggest.Mover
}

// Client runs migrations and suggestions.
type Client struct {
	options *options
	hooks   *hooks
}

// New creates a Client. A destination is required; the source is only
// needed by Migrate.
func New(opts ...Option) (*Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}
	if o.destination == nil {
		return nil, errors.NewConfigError("client", "a destination is required", nil)
	}
	if err := o.rules.Validate(); err != nil {
		return nil, err
	}
	return &Client{options: o, hooks: newHooks()}, nil
}

// Rules returns the configured rule set.
func (c *Client) Rules() rules.Rules {
	return c.options.rules
}
