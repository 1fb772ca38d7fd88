// Package raindrop provides a client for the Raindrop.io REST API, the
// migration destination.
package raindrop

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/agentstation/marksync/internal/transport"
	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/constants"
	"github.com/agentstation/marksync/pkg/errors"
)

// Client talks to the Raindrop API.
type Client struct {
	transport *transport.Client
}

type options struct {
	baseURL string
	topts   []transport.Option
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.topts = append(o.topts, transport.WithUserAgent(ua))
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.topts = append(o.topts, transport.WithTimeout(d))
	}
}

// New creates a client authenticated with a Raindrop test token.
func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, &errors.ConfigError{
			Component: constants.RaindropService,
			Message:   "missing Raindrop token (set RAINDROP_TOKEN or --raindrop-token)",
		}
	}
	o := &options{baseURL: constants.RaindropAPIURL}
	for _, opt := range opts {
		opt(o)
	}
	return &Client{
		transport: transport.New(constants.RaindropService, o.baseURL, &transport.BearerAuth{Token: token}, o.topts...),
	}, nil
}

// FindByURL searches all collections for items stored under link.
//
// The link search also returns items whose URL merely contains link, so
// every result page is read and the caller filters for exact matches.
func (c *Client) FindByURL(ctx context.Context, link string) ([]bookmarks.Existing, error) {
	var out []bookmarks.Existing
	for page := 0; page < constants.MaxLookupPages; page++ {
		query := url.Values{
			"search":  {"link:" + link},
			"page":    {strconv.Itoa(page)},
			"perpage": {strconv.Itoa(constants.MaxPageSize)},
		}
		var resp itemsResponse
		if err := c.transport.Get(ctx, raindropsPath(bookmarks.CollectionAll), query, &resp); err != nil {
			return nil, err
		}
		for _, it := range resp.Items {
			out = append(out, it.toExisting())
		}
		if len(resp.Items) < constants.MaxPageSize {
			break
		}
	}
	return out, nil
}

// Create adds a bookmark. The extended note doubles as the excerpt and the
// original save time is kept as both created and lastUpdate.
func (c *Client) Create(ctx context.Context, d bookmarks.Draft) (bookmarks.Existing, error) {
	title := d.Title
	if title == "" {
		title = d.URL
	}
	tags := d.Tags.Strings()
	important := d.Important
	body := payload{
		Link:        d.URL,
		Title:       &title,
		Tags:        &tags,
		Important:   &important,
		Collection:  &ref{ID: int64(d.Collection)},
		PleaseParse: &parseOptions{Mode: "tags"},
	}
	if d.Note != "" {
		note := d.Note
		body.Note = &note
		body.Excerpt = &note
	}
	if !d.Created.Time.IsZero() {
		body.Created = d.Created.Time.Format(time.RFC3339)
		body.LastUpdate = body.Created
	}

	var resp itemResponse
	if err := c.transport.Post(ctx, "/raindrop", body, &resp); err != nil {
		return bookmarks.Existing{}, err
	}
	return resp.Item.toExisting(), nil
}

// Update writes the non-nil fields of patch to item id. An empty patch is a
// successful no-op.
func (c *Client) Update(ctx context.Context, id int64, p bookmarks.Patch) (bookmarks.Existing, error) {
	if p.Empty() {
		return bookmarks.Existing{ID: id, Found: true}, nil
	}
	body := payload{
		Title:     p.Title,
		Note:      p.Note,
		Excerpt:   p.Note,
		Important: p.Important,
	}
	if p.Tags != nil {
		tags := p.Tags.Strings()
		body.Tags = &tags
	}
	if p.Collection != nil {
		body.Collection = &ref{ID: int64(*p.Collection)}
	}

	var resp itemResponse
	if err := c.transport.Put(ctx, itemPath(id), body, &resp); err != nil {
		return bookmarks.Existing{}, err
	}
	return resp.Item.toExisting(), nil
}

// Move puts item id into collection.
func (c *Client) Move(ctx context.Context, id int64, collection bookmarks.CollectionID) error {
	return c.transport.Put(ctx, itemPath(id), payload{Collection: &ref{ID: int64(collection)}}, nil)
}

// ListCollection returns one zero-based page of a collection.
func (c *Client) ListCollection(ctx context.Context, collection bookmarks.CollectionID, page, perPage int) ([]bookmarks.Existing, error) {
	query := url.Values{
		"page":    {strconv.Itoa(page)},
		"perpage": {strconv.Itoa(perPage)},
	}
	var resp itemsResponse
	if err := c.transport.Get(ctx, raindropsPath(collection), query, &resp); err != nil {
		return nil, err
	}
	out := make([]bookmarks.Existing, 0, len(resp.Items))
	for _, it := range resp.Items {
		out = append(out, it.toExisting())
	}
	return out, nil
}

// Collections lists every collection, root and nested, plus the built-in
// Unsorted collection.
func (c *Client) Collections(ctx context.Context) ([]bookmarks.Collection, error) {
	out := []bookmarks.Collection{{ID: bookmarks.CollectionUnsorted, Title: "Unsorted"}}
	for _, path := range []string{"/collections", "/collections/childrens"} {
		var resp collectionsResponse
		if err := c.transport.Get(ctx, path, nil, &resp); err != nil {
			return nil, err
		}
		for _, col := range resp.Items {
			out = append(out, col.toCollection())
		}
	}
	return out, nil
}

func raindropsPath(collection bookmarks.CollectionID) string {
	return fmt.Sprintf("/raindrops/%d", int64(collection))
}

func itemPath(id int64) string {
	return fmt.Sprintf("/raindrop/%d", id)
}
