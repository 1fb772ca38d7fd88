// Package memstore is an in-memory bookmark destination used by the engine
// and command tests. It behaves like the Raindrop client: URL search,
// create, update, move and paged listing.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/errors"
)

// Store holds bookmarks and collections in memory. It is safe for
// concurrent use.
type Store struct {
	mu          sync.Mutex
	items       []bookmarks.Existing
	collections []bookmarks.Collection
	nextID      int64
	failures    map[string]error
	calls       Calls
}

// Calls counts requests by kind.
type Calls struct {
	Find   int
	Create int
	Update int
	Move   int
	List   int
}

// Writes returns the number of mutating calls.
func (c Calls) Writes() int {
	return c.Create + c.Update + c.Move
}

// New creates a store that knows the given collections. Unsorted always
// exists.
func New(collections ...bookmarks.Collection) *Store {
	s := &Store{
		nextID:   1,
		failures: make(map[string]error),
	}
	s.collections = append(s.collections, bookmarks.Collection{ID: bookmarks.CollectionUnsorted, Title: "Unsorted"})
	s.collections = append(s.collections, collections...)
	return s
}

// Seed inserts existing items as-is and returns their ids. Seeded items may
// share a URL to model duplicates created outside marksync.
func (s *Store) Seed(items ...bookmarks.Existing) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		it.ID = s.nextID
		it.Found = true
		s.nextID++
		s.items = append(s.items, it)
		ids = append(ids, it.ID)
	}
	return ids
}

// FailURL makes every write touching url fail with err. A nil err clears
// the failure.
func (s *Store) FailURL(url string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, url)
		return
	}
	s.failures[url] = err
}

// Calls returns a snapshot of the request counters.
func (s *Store) Calls() Calls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Items returns a copy of all stored items in insertion order.
func (s *Store) Items() []bookmarks.Existing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Get returns the item with id.
func (s *Store) Get(id int64) (bookmarks.Existing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return bookmarks.Existing{}, false
}

// FindByURL returns every item stored under url, oldest first.
func (s *Store) FindByURL(ctx context.Context, url string) ([]bookmarks.Existing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Find++
	var out []bookmarks.Existing
	for _, it := range s.items {
		if it.URL == url {
			out = append(out, it)
		}
	}
	return out, nil
}

// Create stores a new item.
func (s *Store) Create(ctx context.Context, d bookmarks.Draft) (bookmarks.Existing, error) {
	if err := ctx.Err(); err != nil {
		return bookmarks.Existing{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Create++
	if err := s.failures[d.URL]; err != nil {
		return bookmarks.Existing{}, err
	}
	title := d.Title
	if title == "" {
		title = d.URL
	}
	it := bookmarks.Existing{
		ID:         s.nextID,
		URL:        d.URL,
		Title:      title,
		Collection: d.Collection,
		Tags:       slices.Clone(d.Tags),
		Note:       d.Note,
		Important:  d.Important,
		Found:      true,
	}
	s.nextID++
	s.items = append(s.items, it)
	return it, nil
}

// Update applies the non-nil fields of p to item id.
func (s *Store) Update(ctx context.Context, id int64, p bookmarks.Patch) (bookmarks.Existing, error) {
	if err := ctx.Err(); err != nil {
		return bookmarks.Existing{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Update++
	i := s.index(id)
	if i < 0 {
		return bookmarks.Existing{}, errors.NewAPIError("memstore", 404, "item not found")
	}
	it := &s.items[i]
	if err := s.failures[it.URL]; err != nil {
		return bookmarks.Existing{}, err
	}
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Tags != nil {
		it.Tags = slices.Clone(p.Tags)
	}
	if p.Note != nil {
		it.Note = *p.Note
	}
	if p.Important != nil {
		it.Important = *p.Important
	}
	if p.Collection != nil {
		it.Collection = *p.Collection
	}
	return *it, nil
}

// Move puts item id into collection.
func (s *Store) Move(ctx context.Context, id int64, collection bookmarks.CollectionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Move++
	i := s.index(id)
	if i < 0 {
		return errors.NewAPIError("memstore", 404, "item not found")
	}
	if err := s.failures[s.items[i].URL]; err != nil {
		return err
	}
	s.items[i].Collection = collection
	return nil
}

// ListCollection returns one zero-based page of a collection. CollectionAll
// lists every item.
func (s *Store) ListCollection(ctx context.Context, collection bookmarks.CollectionID, page, perPage int) ([]bookmarks.Existing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.List++
	var in []bookmarks.Existing
	for _, it := range s.items {
		if collection == bookmarks.CollectionAll || it.Collection == collection {
			in = append(in, it)
		}
	}
	start := page * perPage
	if perPage <= 0 || start >= len(in) {
		return nil, nil
	}
	end := min(start+perPage, len(in))
	return slices.Clone(in[start:end]), nil
}

// Collections lists the known collections with their item counts.
func (s *Store) Collections(ctx context.Context) ([]bookmarks.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.collections)
	for i := range out {
		out[i].Count = 0
		for _, it := range s.items {
			if it.Collection == out[i].ID {
				out[i].Count++
			}
		}
	}
	return out, nil
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.items, func(it bookmarks.Existing) bool { return it.ID == id })
}
