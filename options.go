package marksync

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/rules"
)

// Option is a function that configures a Client.
type Option func(*options) error

type options struct {
	source      Source
	destination Destination
	rules       rules.Rules
	logger      *zerolog.Logger
}

func defaults() *options {
	return &options{}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithSource sets where bookmarks are read from.
func WithSource(src Source) Option {
	return func(o *options) error {
		if src == nil {
			return errors.NewConfigError("client", "source cannot be nil", nil)
		}
		o.source = src
		return nil
	}
}

// WithDestination sets the service bookmarks are written to.
func WithDestination(dst Destination) Option {
	return func(o *options) error {
		if dst == nil {
			return errors.NewConfigError("client", "destination cannot be nil", nil)
		}
		o.destination = dst
		return nil
	}
}

// WithRules sets the ordered tag-to-collection rules.
func WithRules(rs rules.Rules) Option {
	return func(o *options) error {
		o.rules = rs
		return nil
	}
}

// WithLogger sets the logger used for runs. By default the logger carried
// by the run context is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
