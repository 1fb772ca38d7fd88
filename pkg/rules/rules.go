// Package rules loads the ordered tag-to-collection rule set used to route
// bookmarks. Rules are evaluated in file order and the first rule sharing a
// tag with a bookmark wins.
package rules

import (
	"fmt"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/errors"
)

// Rule maps a set of tags to a destination collection.
type Rule struct {
	Name       string
	Collection bookmarks.CollectionID
	Tags       bookmarks.Tags
}

// Label returns the rule name, or the collection id when the rule is unnamed.
func (r Rule) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return "collection " + r.Collection.String()
}

// Matches reports whether the rule shares at least one tag with tags.
func (r Rule) Matches(tags bookmarks.Tags) bool {
	return r.Tags.Intersects(tags)
}

// Rules is an ordered rule set. Priority is list position.
type Rules []Rule

// Match returns the first rule matching tags and its index, or -1.
func (rs Rules) Match(tags bookmarks.Tags) (*Rule, int) {
	for i := range rs {
		if rs[i].Matches(tags) {
			return &rs[i], i
		}
	}
	return nil, -1
}

// Collections returns the distinct target collections in rule order.
func (rs Rules) Collections() []bookmarks.CollectionID {
	seen := make(map[bookmarks.CollectionID]struct{}, len(rs))
	var ids []bookmarks.CollectionID
	for _, r := range rs {
		if _, ok := seen[r.Collection]; ok {
			continue
		}
		seen[r.Collection] = struct{}{}
		ids = append(ids, r.Collection)
	}
	return ids
}

// Validate checks every rule. The first invalid rule fails the whole set.
func (rs Rules) Validate() error {
	for i, r := range rs {
		if err := r.validate(); err != nil {
			return errors.NewConfigError("rules", fmt.Sprintf("rule %d: %v", i, err), err)
		}
	}
	return nil
}

func (r Rule) validate() error {
	if r.Collection == bookmarks.CollectionAll {
		return &errors.ValidationError{
			Field:   "collection_id",
			Value:   r.Collection,
			Message: "0 is not a collection",
		}
	}
	if len(r.Tags) == 0 {
		return &errors.ValidationError{
			Field:   "tags",
			Message: "must contain at least one non-empty tag",
		}
	}
	return nil
}
