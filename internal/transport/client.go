// Package transport is the shared JSON-over-HTTP client used by the
// bookmarking service clients.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentstation/marksync/pkg/constants"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/logging"
)

// Client performs authenticated JSON requests against one service.
type Client struct {
	http      *http.Client
	auth      Authenticator
	baseURL   string
	service   string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for service rooted at baseURL.
func New(service, baseURL string, auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http:      &http.Client{Timeout: constants.DefaultHTTPTimeout},
		auth:      auth,
		baseURL:   strings.TrimRight(baseURL, "/"),
		service:   service,
		userAgent: "marksync",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Service returns the service name used in errors.
func (c *Client) Service() string {
	return c.service
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Do sends one request. A nil body sends no payload; a nil out discards the
// response body after checking the status.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.WrapParse("json", "request", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return &errors.APIError{Service: c.service, Endpoint: path, Message: "cannot build request", Err: err}
	}
	c.auth.Apply(req)

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	logging.FromContext(ctx).Debug().
		Str("service", c.service).
		Str("method", method).
		Str("path", path).
		Dur("elapsed", time.Since(start)).
		Err(err).
		Msg("HTTP request")
	if err != nil {
		if isTimeout(err) {
			return errors.NewTimeoutError(method+" "+path, c.http.Timeout.String(), err.Error())
		}
		if ctx.Err() != nil {
			return stderrors.Join(errors.ErrCanceled, ctx.Err())
		}
		return &errors.APIError{Service: c.service, Endpoint: path, Message: err.Error(), Err: err}
	}

	return DecodeResponse(c.service, path, resp, out)
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
