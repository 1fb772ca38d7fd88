package raindrop

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/resolver"
	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New("test-token", WithBaseURL(server.URL), WithTimeout(5*time.Second))
	require.NoError(t, err)
	return c
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}

func TestFindByURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/raindrops/0", r.URL.Path)
		assert.Equal(t, "link:https://go.dev/doc/effective_go", r.URL.Query().Get("search"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write(fixture(t, "search.json"))
	})

	got, err := c.FindByURL(context.Background(), "https://go.dev/doc/effective_go")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, int64(811), got[0].ID)
	assert.True(t, got[0].Found)
	assert.Equal(t, bookmarks.CollectionID(555), got[0].Collection)
	assert.Equal(t, bookmarks.Tags{"docs", "golang"}, got[0].Tags)
	assert.Equal(t, "style guide", got[0].Note)
}

func TestFindByURLReadsEveryPage(t *testing.T) {
	// The link search matches substrings, so the exact record comes after
	// more than a full page of near hits.
	var stored []item
	for i := range 60 {
		stored = append(stored, item{ID: int64(100 + i), Link: "https://example.com/page" + strconv.Itoa(i)})
	}
	stored = append(stored, item{ID: 7, Link: "https://example.com", Collection: ref{ID: 555}})

	requests := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		q := r.URL.Query()
		needle := strings.TrimPrefix(q.Get("search"), "link:")
		page, _ := strconv.Atoi(q.Get("page"))
		perPage, _ := strconv.Atoi(q.Get("perpage"))

		var hits []item
		for _, it := range stored {
			if strings.Contains(it.Link, needle) {
				hits = append(hits, it)
			}
		}
		start := min(page*perPage, len(hits))
		end := min(start+perPage, len(hits))
		require.NoError(t, json.NewEncoder(w).Encode(itemsResponse{Result: true, Items: hits[start:end], Count: len(hits)}))
	})

	got, err := c.FindByURL(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Len(t, got, 61)
	assert.Equal(t, 2, requests)

	existing, err := resolver.New(c).Lookup(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.True(t, existing.Found)
	assert.Equal(t, int64(7), existing.ID)
	assert.Equal(t, bookmarks.CollectionID(555), existing.Collection)
}

func TestFindByURLError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.FindByURL(context.Background(), "https://go.dev")
	require.Error(t, err)
	assert.True(t, errors.IsRateLimited(err))
}

func TestCreate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/raindrop", r.URL.Path)

		body := decodeBody(t, r)
		assert.Equal(t, "https://go.dev", body["link"])
		assert.Equal(t, "Go", body["title"])
		assert.Equal(t, []any{"golang", "starred"}, body["tags"])
		assert.Equal(t, true, body["important"])
		assert.Equal(t, map[string]any{"$id": float64(555)}, body["collection"])
		assert.Equal(t, map[string]any{"mode": "tags"}, body["pleaseParse"])
		assert.Equal(t, "the language", body["note"])
		assert.Equal(t, "the language", body["excerpt"])
		assert.Equal(t, "2020-01-02T03:04:05Z", body["created"])
		assert.Equal(t, "2020-01-02T03:04:05Z", body["lastUpdate"])

		_, _ = w.Write([]byte(`{"result":true,"item":{"_id":901,"link":"https://go.dev","collection":{"$id":555}}}`))
	})

	created, err := c.Create(context.Background(), bookmarks.Draft{
		URL:        "https://go.dev",
		Title:      "Go",
		Tags:       bookmarks.Tags{"golang", "starred"},
		Note:       "the language",
		Important:  true,
		Created:    utc.New(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)),
		Collection: 555,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(901), created.ID)
}

func TestCreateMinimal(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.Equal(t, "https://x.example", body["title"], "title falls back to the URL")
		assert.Equal(t, []any{}, body["tags"])
		assert.NotContains(t, body, "note")
		assert.NotContains(t, body, "excerpt")
		assert.NotContains(t, body, "created")
		_, _ = w.Write([]byte(`{"result":true,"item":{"_id":1}}`))
	})

	_, err := c.Create(context.Background(), bookmarks.Draft{URL: "https://x.example", Collection: bookmarks.CollectionUnsorted})
	require.NoError(t, err)
}

func TestUpdate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/raindrop/77", r.URL.Path)

		body := decodeBody(t, r)
		assert.Equal(t, []any{"a", "b"}, body["tags"])
		assert.Equal(t, "n", body["note"])
		assert.Equal(t, "n", body["excerpt"])
		assert.NotContains(t, body, "collection")
		assert.NotContains(t, body, "title")
		assert.NotContains(t, body, "important")
		_, _ = w.Write([]byte(`{"result":true,"item":{"_id":77}}`))
	})

	note := "n"
	updated, err := c.Update(context.Background(), 77, bookmarks.Patch{Tags: bookmarks.Tags{"a", "b"}, Note: &note})
	require.NoError(t, err)
	assert.Equal(t, int64(77), updated.ID)
}

func TestUpdateEmptyPatchSendsNothing(t *testing.T) {
	called := false
	c := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		called = true
	})

	got, err := c.Update(context.Background(), 5, bookmarks.Patch{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.False(t, called)
}

func TestMove(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/raindrop/12", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, map[string]any{"collection": map[string]any{"$id": float64(777)}}, body)
		_, _ = w.Write([]byte(`{"result":true}`))
	})

	require.NoError(t, c.Move(context.Background(), 12, 777))
}

func TestListCollection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/raindrops/-1", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("perpage"))
		_, _ = w.Write(fixture(t, "search.json"))
	})

	got, err := c.ListCollection(context.Background(), bookmarks.CollectionUnsorted, 2, 25)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCollections(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/collections":
			_, _ = w.Write(fixture(t, "collections.json"))
		case "/collections/childrens":
			_, _ = w.Write(fixture(t, "childrens.json"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	got, err := c.Collections(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, bookmarks.CollectionUnsorted, got[0].ID)
	assert.Equal(t, "Work", got[1].Title)
	require.NotNil(t, got[3].Parent)
	assert.Equal(t, bookmarks.CollectionID(777), *got[3].Parent)
}
