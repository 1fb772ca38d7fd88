package reconciler

import (
	"time"

	"github.com/agentstation/marksync/pkg/errors"
)

// Options selects how found records are treated.
type Options struct {
	// SkipExisting leaves found records alone unless MergeTags is set.
	SkipExisting bool

	// MergeTags additively merges into found records. It overrides SkipExisting.
	MergeTags bool

	// DryRun decides without writing.
	DryRun bool

	pacer *Pacer
}

func defaultOptions() *Options {
	return &Options{SkipExisting: true}
}

// Option is a function that configures a Reconciler.
type Option func(*Options) error

func (o *Options) apply(opts ...Option) (*Options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func newOptions(opts ...Option) (*Options, error) {
	return defaultOptions().apply(opts...)
}

// WithSkipExisting sets whether found records are skipped.
func WithSkipExisting(skip bool) Option {
	return func(o *Options) error {
		o.SkipExisting = skip
		return nil
	}
}

// WithMergeTags enables additive merging into found records.
func WithMergeTags(merge bool) Option {
	return func(o *Options) error {
		o.MergeTags = merge
		return nil
	}
}

// WithDryRun disables all writes.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) error {
		o.DryRun = dryRun
		return nil
	}
}

// WithPacing spaces writes by delay.
func WithPacing(delay time.Duration) Option {
	return func(o *Options) error {
		if delay < 0 {
			return &errors.ValidationError{
				Field:   "pacing",
				Value:   delay,
				Message: "must be non-negative",
			}
		}
		o.pacer = NewPacer(delay)
		return nil
	}
}

// WithPacer shares a pacer with other writers, such as the suggest mover.
func WithPacer(p *Pacer) Option {
	return func(o *Options) error {
		if p == nil {
			return &errors.ValidationError{Field: "pacer", Message: "cannot be nil"}
		}
		o.pacer = p
		return nil
	}
}
