package suggest

import (
	"context"
	"iter"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/constants"
	"github.com/agentstation/marksync/pkg/errors"
)

// Lister reads destination records and collections.
type Lister interface {
	ListCollection(ctx context.Context, collection bookmarks.CollectionID, page, perPage int) ([]bookmarks.Existing, error)
	Collections(ctx context.Context) ([]bookmarks.Collection, error)
}

// Mover moves a destination record to another collection.
type Mover interface {
	Move(ctx context.Context, id int64, collection bookmarks.CollectionID) error
}

// PageOptions controls paging through a collection.
type PageOptions struct {
	PerPage   int // items per page
	StartPage int // zero-based first page
	MaxPages  int // 0 means until exhausted
}

func (o PageOptions) perPage() int {
	if o.PerPage <= 0 || o.PerPage > constants.MaxPageSize {
		return constants.DefaultPageSize
	}
	return o.PerPage
}

// Pages lazily reads a collection page by page. Iteration stops at the first
// empty or short page, after MaxPages pages, or after yielding an error.
// A sequence can be restarted from any page through StartPage.
func Pages(ctx context.Context, l Lister, collection bookmarks.CollectionID, opts PageOptions) iter.Seq2[[]bookmarks.Existing, error] {
	perPage := opts.perPage()
	return func(yield func([]bookmarks.Existing, error) bool) {
		for n := 0; opts.MaxPages <= 0 || n < opts.MaxPages; n++ {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			page := opts.StartPage + n
			items, err := l.ListCollection(ctx, collection, page, perPage)
			if err != nil {
				yield(nil, errors.WrapTransient("list", "", err))
				return
			}
			if len(items) == 0 {
				return
			}
			if !yield(items, nil) {
				return
			}
			if len(items) < perPage {
				return
			}
		}
	}
}

// Collect drains a page sequence into one slice.
func Collect(pages iter.Seq2[[]bookmarks.Existing, error]) ([]bookmarks.Existing, error) {
	var all []bookmarks.Existing
	for items, err := range pages {
		if err != nil {
			return all, err
		}
		all = append(all, items...)
	}
	return all, nil
}
