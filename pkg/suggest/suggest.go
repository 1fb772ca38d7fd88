// Package suggest proposes collections for destination records that sit in
// the unsorted bucket, using the same rules as a migration.
package suggest

import (
	"iter"
	"net/url"
	"strings"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/router"
	"github.com/agentstation/marksync/pkg/rules"
)

// Suggestion is the proposed home of one destination record.
type Suggestion struct {
	Record bookmarks.Existing

	// Collection is the rule target, or the default when no rule matched.
	Collection bookmarks.CollectionID
	Rule       *rules.Rule

	// Name is a proposed collection name for records no rule matched:
	// the first tag, else the URL host. Never applied automatically.
	Name string
}

// Guessed reports whether a rule produced the suggestion.
func (s Suggestion) Guessed() bool {
	return s.Rule != nil
}

// Label is the human-readable target of the suggestion.
func (s Suggestion) Label() string {
	if s.Rule != nil {
		return s.Rule.Label()
	}
	if s.Name != "" {
		return s.Name + " (new)"
	}
	return "-"
}

// Suggest routes each record through the rules. Read-later handling does
// not apply here: the records are already on the destination.
func Suggest(records []bookmarks.Existing, rs rules.Rules, def bookmarks.CollectionID) iter.Seq[Suggestion] {
	opts := router.Options{Default: def}
	return func(yield func(Suggestion) bool) {
		for _, rec := range records {
			d := router.Route(bookmarks.Record{URL: rec.URL, Tags: rec.Tags}, rs, opts)
			s := Suggestion{Record: rec, Collection: d.Collection, Rule: d.Rule}
			if d.Rule == nil {
				s.Name = SynthesizeName(rec)
			}
			if !yield(s) {
				return
			}
		}
	}
}

// SynthesizeName proposes a collection name for an unmatched record.
func SynthesizeName(rec bookmarks.Existing) string {
	if len(rec.Tags) > 0 {
		return rec.Tags[0]
	}
	u, err := url.Parse(strings.TrimSpace(rec.URL))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
