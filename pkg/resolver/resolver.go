// Package resolver finds the destination record already holding a URL.
package resolver

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/logging"
)

// Finder searches the destination for records stored under a URL. The
// search may be fuzzy; the resolver keeps exact matches only.
type Finder interface {
	FindByURL(ctx context.Context, url string) ([]bookmarks.Existing, error)
}

// Resolver looks up destination state by exact URL.
type Resolver struct {
	finder     Finder
	duplicates atomic.Int64
}

// New creates a resolver over finder.
func New(finder Finder) *Resolver {
	return &Resolver{finder: finder}
}

// Lookup returns the destination record for url, or bookmarks.NotFound.
//
// When several destination records share the URL the first one returned by
// the finder is used; the others are counted as unmanaged duplicates and
// left alone. A failed search is reported as a *errors.TransientError and is
// never mistaken for "not found".
func (r *Resolver) Lookup(ctx context.Context, url string) (bookmarks.Existing, error) {
	matches, err := r.finder.FindByURL(ctx, url)
	if err != nil {
		return bookmarks.NotFound, errors.WrapTransient("lookup", url, err)
	}

	var found bookmarks.Existing
	exact := 0
	for _, m := range matches {
		if !sameURL(m.URL, url) {
			continue
		}
		exact++
		if exact == 1 {
			found = m
			found.Found = true
		}
	}

	if exact > 1 {
		r.duplicates.Add(int64(exact - 1))
		logging.FromContext(ctx).Warn().
			Str("url", url).
			Int64("id", found.ID).
			Int("duplicates", exact-1).
			Msg("Destination holds the URL more than once; using the first match")
	}
	return found, nil
}

// Duplicates returns the number of unmanaged duplicate records seen so far.
func (r *Resolver) Duplicates() int {
	return int(r.duplicates.Load())
}

// sameURL compares URLs exactly, ignoring surrounding whitespace.
func sameURL(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
