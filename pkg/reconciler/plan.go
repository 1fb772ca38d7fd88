package reconciler

import (
	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/router"
)

// Plan decides what to do with a record given the destination state.
//
//	not found                          -> create
//	found, merge                       -> merge (wins over skip)
//	found, skip, no merge              -> skip
//	found, no skip, no merge           -> overwrite
func Plan(existing bookmarks.Existing, opts Options) Action {
	switch {
	case !existing.Found:
		return ActionCreate
	case opts.MergeTags:
		return ActionMerge
	case opts.SkipExisting:
		return ActionSkip
	default:
		return ActionOverwrite
	}
}

// MergePatch computes the additive update for an existing record:
// tags become the union of both sides, the note is replaced only by a
// different non-empty note, importance is only ever raised. The collection
// is left where it is. The patch is empty when nothing would change.
func MergePatch(r bookmarks.Record, d router.Decision, existing bookmarks.Existing) bookmarks.Patch {
	var p bookmarks.Patch

	if merged := existing.Tags.Union(d.Tags); !merged.Equal(existing.Tags) {
		p.Tags = merged
	}
	if r.Note != "" && r.Note != existing.Note {
		note := r.Note
		p.Note = &note
	}
	if r.Important && !existing.Important {
		important := true
		p.Important = &important
	}
	return p
}

// OverwritePatch replaces every managed field of an existing record with the
// record's values, including the routed collection.
func OverwritePatch(r bookmarks.Record, d router.Decision) bookmarks.Patch {
	title := r.Title
	note := r.Note
	important := r.Important
	collection := d.Collection
	tags := d.Tags
	if tags == nil {
		tags = bookmarks.Tags{}
	}
	return bookmarks.Patch{
		Title:      &title,
		Tags:       tags,
		Note:       &note,
		Important:  &important,
		Collection: &collection,
	}
}

// target returns the collection the record ends up in for action.
func target(action Action, d router.Decision, existing bookmarks.Existing) bookmarks.CollectionID {
	switch action {
	case ActionCreate, ActionOverwrite:
		return d.Collection
	default:
		return existing.Collection
	}
}
