// Package pinboard reads bookmarks from Pinboard, either from a posts/all
// JSON export on disk or from the live API.
package pinboard

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"time"

	"github.com/agentstation/marksync/internal/transport"
	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/constants"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/logging"
)

// Source fetches Pinboard posts and adapts them into candidates.
type Source struct {
	path      string
	transport *transport.Client
}

type options struct {
	baseURL string
	topts   []transport.Option
}

// Option configures an API source.
type Option func(*options)

// WithBaseURL points the source at another API root.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

// WithUserAgent sets the User-Agent of the export call.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.topts = append(o.topts, transport.WithUserAgent(ua))
	}
}

// WithTimeout sets the request timeout for the export call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.topts = append(o.topts, transport.WithTimeout(d))
	}
}

// NewFileSource reads an export previously saved from posts/all.
func NewFileSource(path string) *Source {
	return &Source{path: path}
}

// NewAPISource fetches all posts with an API token of the form user:TOKEN.
func NewAPISource(token string, opts ...Option) (*Source, error) {
	if token == "" {
		return nil, &errors.ConfigError{
			Component: constants.PinboardService,
			Message:   "missing Pinboard token (set PINBOARD_TOKEN or use --pinboard-json)",
		}
	}
	o := &options{baseURL: constants.PinboardAPIURL}
	for _, opt := range opts {
		opt(o)
	}
	auth := &transport.QueryAuth{Param: "auth_token", Token: token}
	return &Source{
		transport: transport.New(constants.PinboardService, o.baseURL, auth, o.topts...),
	}, nil
}

// Fetch returns every post as a candidate, in export order.
func (s *Source) Fetch(ctx context.Context) ([]bookmarks.Candidate, error) {
	posts, err := s.posts(ctx)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info().
		Int("posts", len(posts)).
		Str("from", s.String()).
		Msg("Loaded Pinboard posts")
	return Adapt(posts), nil
}

// String describes where posts come from.
func (s *Source) String() string {
	if s.transport != nil {
		return "pinboard api"
	}
	return s.path
}

func (s *Source) posts(ctx context.Context) ([]Post, error) {
	if s.transport == nil {
		return ReadFile(s.path)
	}
	var posts []Post
	query := url.Values{"format": {"json"}}
	if err := s.transport.Get(ctx, "/posts/all", query, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ReadFile decodes a posts/all export.
func ReadFile(path string) ([]Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return posts, nil
}
