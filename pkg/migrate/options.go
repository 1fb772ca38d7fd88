// Package migrate provides the options and result of a Pinboard to Raindrop
// migration run.
package migrate

import (
	"time"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/constants"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/agentstation/marksync/pkg/router"
)

// Options controls one migration run.
type Options struct {
	// Routing
	TargetCollection    bookmarks.CollectionID  // Collection for records no rule matches
	ReadLaterCollection *bookmarks.CollectionID // Overrides rules for read-later records
	ReadLaterTag        string                  // Added to read-later records; empty disables

	// Reconciliation
	SkipExisting bool // Leave records already on the destination alone
	MergeTags    bool // Merge tags and notes into existing records; overrides SkipExisting
	DryRun       bool // Decide and report without writing

	// Input handling
	LowercaseTags bool // Lowercase tags before matching and writing
	Limit         int  // Process at most this many valid records; 0 means all
	Offset        int  // Skip this many source entries first

	// Pacing between destination writes
	Pacing time.Duration

	// RunID tags logs and reports; generated when empty
	RunID string
}

// Option is a function that configures migration Options.
type Option func(*Options)

// Defaults returns the default migration options.
func Defaults() *Options {
	return &Options{
		TargetCollection: bookmarks.CollectionUnsorted,
		ReadLaterTag:     constants.DefaultReadLaterTag,
		SkipExisting:     true,
		Pacing:           constants.DefaultPacing,
	}
}

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate checks the options. Invalid options are a configuration error.
func (o *Options) Validate() error {
	var verr *errors.ValidationError
	switch {
	case o.Limit < 0:
		verr = &errors.ValidationError{Field: "Limit", Value: o.Limit, Message: "must be non-negative"}
	case o.Offset < 0:
		verr = &errors.ValidationError{Field: "Offset", Value: o.Offset, Message: "must be non-negative"}
	case o.Pacing < 0:
		verr = &errors.ValidationError{Field: "Pacing", Value: o.Pacing, Message: "must be non-negative"}
	case o.TargetCollection == bookmarks.CollectionAll:
		verr = &errors.ValidationError{Field: "TargetCollection", Value: o.TargetCollection, Message: "0 is not a collection"}
	case o.ReadLaterCollection != nil && *o.ReadLaterCollection == bookmarks.CollectionAll:
		verr = &errors.ValidationError{Field: "ReadLaterCollection", Value: *o.ReadLaterCollection, Message: "0 is not a collection"}
	}
	if verr != nil {
		return errors.NewConfigError("options", verr.Error(), verr)
	}
	return nil
}

// RouterOptions returns the routing part of the options.
func (o *Options) RouterOptions() router.Options {
	return router.Options{
		ReadLaterCollection: o.ReadLaterCollection,
		ReadLaterTag:        o.ReadLaterTag,
		Default:             o.TargetCollection,
	}
}

// ReconcilerOptions returns the reconciler part of the options.
func (o *Options) ReconcilerOptions() []reconciler.Option {
	return []reconciler.Option{
		reconciler.WithSkipExisting(o.SkipExisting),
		reconciler.WithMergeTags(o.MergeTags),
		reconciler.WithDryRun(o.DryRun),
		reconciler.WithPacing(o.Pacing),
	}
}

// WithTargetCollection sets the fallback collection.
func WithTargetCollection(id bookmarks.CollectionID) Option {
	return func(o *Options) {
		o.TargetCollection = id
	}
}

// WithReadLaterCollection routes read-later records to id.
func WithReadLaterCollection(id bookmarks.CollectionID) Option {
	return func(o *Options) {
		o.ReadLaterCollection = &id
	}
}

// WithReadLaterTag sets the tag added to read-later records.
func WithReadLaterTag(tag string) Option {
	return func(o *Options) {
		o.ReadLaterTag = tag
	}
}

// WithSkipExisting configures whether found records are skipped.
func WithSkipExisting(skip bool) Option {
	return func(o *Options) {
		o.SkipExisting = skip
	}
}

// WithMergeTags configures additive merging into found records.
func WithMergeTags(merge bool) Option {
	return func(o *Options) {
		o.MergeTags = merge
	}
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.DryRun = dryRun
	}
}

// WithLowercaseTags lowercases all tags.
func WithLowercaseTags(lower bool) Option {
	return func(o *Options) {
		o.LowercaseTags = lower
	}
}

// WithLimit caps the number of valid records processed.
func WithLimit(limit int) Option {
	return func(o *Options) {
		o.Limit = limit
	}
}

// WithOffset skips the first n source entries.
func WithOffset(n int) Option {
	return func(o *Options) {
		o.Offset = n
	}
}

// WithPacing sets the delay between destination writes.
func WithPacing(d time.Duration) Option {
	return func(o *Options) {
		o.Pacing = d
	}
}

// WithRunID sets the run id instead of generating one.
func WithRunID(id string) Option {
	return func(o *Options) {
		o.RunID = id
	}
}
