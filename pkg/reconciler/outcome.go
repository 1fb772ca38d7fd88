package reconciler

import (
	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/constants"
)

// Kind classifies what happened to one source entry.
type Kind string

// Outcome kinds.
const (
	KindCreated       Kind = "created"
	KindSkipped       Kind = "skipped"
	KindMerged        Kind = "merged"
	KindDryRunPlanned Kind = "dry_run_planned"
	KindFailed        Kind = "failed"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Kinds lists every outcome kind in report order.
var Kinds = []Kind{KindCreated, KindMerged, KindSkipped, KindDryRunPlanned, KindFailed}

// Action is what the reconciler decided to do with a record.
type Action string

// Reconciliation actions.
const (
	ActionNone      Action = ""
	ActionCreate    Action = "create"
	ActionSkip      Action = "skip"
	ActionMerge     Action = "merge"
	ActionOverwrite Action = "overwrite"
)

// String returns the action name.
func (a Action) String() string {
	return string(a)
}

// Mutates reports whether the action writes to the destination.
func (a Action) Mutates() bool {
	return a == ActionCreate || a == ActionMerge || a == ActionOverwrite
}

// Updates reports whether the action patches an existing record.
func (a Action) Updates() bool {
	return a == ActionMerge || a == ActionOverwrite
}

// Outcome is the result for one source entry. Every entry of a run yields
// exactly one Outcome.
type Outcome struct {
	Index      int
	Kind       Kind
	Action     Action
	URL        string
	ID         int64
	Collection bookmarks.CollectionID
	Reason     string
	Err        error

	// Changed is false for a merge that found nothing to update.
	Changed bool
}

// Skipped builds the outcome of an entry that was never looked up: a data
// error or a URL repeated within the source.
func Skipped(c bookmarks.Candidate, reason string) Outcome {
	return Outcome{
		Index:  c.Index,
		Kind:   KindSkipped,
		Action: ActionSkip,
		URL:    c.Record.URL,
		Reason: reason,
		Err:    c.Err,
	}
}

// Invalid is the outcome of a candidate the adapter rejected.
func Invalid(c bookmarks.Candidate) Outcome {
	reason := "invalid source entry"
	if c.Err != nil {
		reason = c.Err.Error()
	}
	return Skipped(c, reason)
}

// DuplicateInSource is the outcome of a URL already seen in this run.
func DuplicateInSource(c bookmarks.Candidate) Outcome {
	return Skipped(c, constants.DuplicateInSource)
}

// Failed builds a failure outcome.
func Failed(c bookmarks.Candidate, action Action, collection bookmarks.CollectionID, err error) Outcome {
	return Outcome{
		Index:      c.Index,
		Kind:       KindFailed,
		Action:     action,
		URL:        c.Record.URL,
		Collection: collection,
		Reason:     err.Error(),
		Err:        err,
	}
}
