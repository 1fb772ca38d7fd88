// Package router assigns a destination collection to a bookmark.
//
// Precedence, highest first:
//
//  1. the read-later collection, when the record is read-later and one is configured
//  2. the first rule whose tags intersect the record's tags
//  3. the default collection
package router

import (
	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/rules"
)

// Options configures routing.
type Options struct {
	// ReadLaterCollection overrides all rules for read-later records when set.
	ReadLaterCollection *bookmarks.CollectionID

	// ReadLaterTag is added to read-later records on write. Empty disables it.
	ReadLaterTag string

	// Default receives records no rule matches.
	Default bookmarks.CollectionID
}

// Decision is the routing result for one record.
type Decision struct {
	Collection bookmarks.CollectionID
	Rule       *rules.Rule // nil when no rule decided
	RuleIndex  int         // -1 when no rule decided
	ReadLater  bool        // the read-later override picked the collection
	Tags       bookmarks.Tags
}

// Fallback reports whether the default collection was used.
func (d Decision) Fallback() bool {
	return d.Rule == nil && !d.ReadLater
}

// Route decides the collection and write-time tags of a record. It has no
// side effects and the same inputs always give the same decision.
func Route(record bookmarks.Record, rs rules.Rules, opts Options) Decision {
	d := Decision{
		Collection: opts.Default,
		RuleIndex:  -1,
		Tags:       record.Tags,
	}
	if record.ReadLater {
		d.Tags = d.Tags.With(opts.ReadLaterTag)
	}

	if record.ReadLater && opts.ReadLaterCollection != nil {
		d.Collection = *opts.ReadLaterCollection
		d.ReadLater = true
		return d
	}

	// The read-later tag is never part of matching.
	if rule, idx := rs.Match(record.Tags); rule != nil {
		d.Collection = rule.Collection
		d.Rule = rule
		d.RuleIndex = idx
	}
	return d
}
