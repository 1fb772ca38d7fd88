package pinboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSourceFetch(t *testing.T) {
	src := NewFileSource(filepath.Join("testdata", "posts.json"))
	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)

	first := got[0]
	require.True(t, first.Valid())
	assert.Equal(t, "https://go.dev/doc/effective_go", first.Record.URL)
	assert.Equal(t, "Effective Go", first.Record.Title)
	assert.Equal(t, "The style guide.", first.Record.Note)
	assert.Equal(t, bookmarks.Tags{"docs", "golang", "starred"}, first.Record.Tags)
	assert.True(t, first.Record.Important)
	assert.False(t, first.Record.ReadLater)
	assert.Equal(t, time.Date(2021, 3, 4, 10, 11, 12, 0, time.UTC), first.Record.Created.Time)

	later := got[1]
	assert.Equal(t, "https://example.com/later", later.Record.Title, "title falls back to the URL")
	assert.True(t, later.Record.ReadLater)
	assert.Empty(t, later.Record.Tags)

	broken := got[2]
	assert.False(t, broken.Valid())
	assert.Equal(t, 2, broken.Index)
	assert.True(t, errors.IsData(broken.Err))

	rust := got[3]
	assert.Equal(t, bookmarks.Tags{"programming", "Rust"}, rust.Record.Tags)
	assert.True(t, rust.Record.Created.Time.IsZero(), "bad time is ignored")
}

func TestFileSourceErrors(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"href":`), 0o600))
	_, err = NewFileSource(bad).Fetch(context.Background())
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestAPISource(t *testing.T) {
	fixture, err := os.ReadFile(filepath.Join("testdata", "posts.json"))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/all", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "user:secret", r.URL.Query().Get("auth_token"))
		assert.Equal(t, "marksync/test", r.Header.Get("User-Agent"))
		_, _ = w.Write(fixture)
	}))
	defer server.Close()

	src, err := NewAPISource("user:secret", WithBaseURL(server.URL), WithTimeout(time.Second), WithUserAgent("marksync/test"))
	require.NoError(t, err)
	assert.Equal(t, "pinboard api", src.String())

	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestAPISourceErrors(t *testing.T) {
	_, err := NewAPISource("")
	assert.True(t, errors.IsConfig(err))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	src, err := NewAPISource("user:wrong", WithBaseURL(server.URL))
	require.NoError(t, err)
	_, err = src.Fetch(context.Background())
	assert.True(t, errors.IsAuthentication(err))
}

func TestPostRecordCaseInsensitiveStar(t *testing.T) {
	r, err := Post{Href: " https://a.example ", Tags: "Starred"}.Record(0)
	require.NoError(t, err)
	assert.Equal(t, "https://a.example", r.URL)
	assert.True(t, r.Important)
}
