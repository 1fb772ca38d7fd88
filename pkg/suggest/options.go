package suggest

import (
	"time"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/constants"
	"github.com/agentstation/marksync/pkg/errors"
)

// Options controls a suggest run.
type Options struct {
	Collection bookmarks.CollectionID // Collection to examine, Unsorted by default
	Pages      PageOptions
	Move       bool          // Move records to rule targets
	Pacing     time.Duration // Delay between moves
}

// Option configures suggest Options.
type Option func(*Options)

// Defaults returns the default suggest options.
func Defaults() *Options {
	return &Options{
		Collection: bookmarks.CollectionUnsorted,
		Pages:      PageOptions{PerPage: constants.DefaultPageSize},
		Pacing:     constants.DefaultSuggestPacing,
	}
}

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate checks the options.
func (o *Options) Validate() error {
	var verr *errors.ValidationError
	switch {
	case o.Pages.PerPage < 0 || o.Pages.PerPage > constants.MaxPageSize:
		verr = &errors.ValidationError{Field: "PerPage", Value: o.Pages.PerPage, Message: "must be at most 50, or 0 for the default"}
	case o.Pages.StartPage < 0:
		verr = &errors.ValidationError{Field: "StartPage", Value: o.Pages.StartPage, Message: "must be non-negative"}
	case o.Pages.MaxPages < 0:
		verr = &errors.ValidationError{Field: "MaxPages", Value: o.Pages.MaxPages, Message: "must be non-negative"}
	case o.Pacing < 0:
		verr = &errors.ValidationError{Field: "Pacing", Value: o.Pacing, Message: "must be non-negative"}
	}
	if verr != nil {
		return errors.NewConfigError("options", verr.Error(), verr)
	}
	return nil
}

// WithCollection sets the collection to examine.
func WithCollection(id bookmarks.CollectionID) Option {
	return func(o *Options) {
		o.Collection = id
	}
}

// WithPageOptions sets paging.
func WithPageOptions(p PageOptions) Option {
	return func(o *Options) {
		o.Pages = p
	}
}

// WithApply enables moving records.
func WithApply(apply bool) Option {
	return func(o *Options) {
		o.Move = apply
	}
}

// WithPacing sets the delay between moves.
func WithPacing(d time.Duration) Option {
	return func(o *Options) {
		o.Pacing = d
	}
}
