package migrate

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/marksync"
	cmdapp "github.com/agentstation/marksync/cmd/application"
	"github.com/agentstation/marksync/internal/cmd/application"
	"github.com/agentstation/marksync/internal/memstore"
	"github.com/agentstation/marksync/internal/sources/pinboard"
	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/errors"
)

type countingLock struct{ released *int }

func (l countingLock) Release() error {
	*l.released++
	return nil
}

func newMock(store *memstore.Store, format string) (*application.Mock, *int, *int) {
	acquired, released := 0, 0
	mock := &application.Mock{
		SourceFunc: func(path, _ string) (marksync.Source, error) {
			return pinboard.NewFileSource(path), nil
		},
		DestinationFunc: func(string) (marksync.Destination, error) {
			return store, nil
		},
		LockFunc: func() (cmdapp.Releaser, error) {
			acquired++
			return countingLock{released: &released}, nil
		},
		OutputFormatFunc: func() string { return format },
	}
	return mock, &acquired, &released
}

func run(t *testing.T, app *application.Mock, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateCommand(t *testing.T) {
	store := memstore.New()
	mock, acquired, released := newMock(store, "table")

	out, err := run(t, mock,
		"--pinboard-json", "testdata/posts.json",
		"--collection-map", "testdata/rules.yaml",
		"--readlater-collection-id", "42",
		"--sleep", "0s",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "3 created")
	assert.Contains(t, out, "entry #2")
	assert.Equal(t, 1, *acquired)
	assert.Equal(t, 1, *released)

	items := store.Items()
	require.Len(t, items, 3)
	assert.Equal(t, bookmarks.CollectionID(777), items[0].Collection)
	assert.Equal(t, bookmarks.CollectionID(42), items[1].Collection)
	assert.True(t, items[1].Tags.Contains("toread"))
	assert.Equal(t, bookmarks.CollectionUnsorted, items[2].Collection)
}

func TestMigrateCommandDryRun(t *testing.T) {
	store := memstore.New()
	mock, acquired, _ := newMock(store, "table")

	out, err := run(t, mock, "--pinboard-json", "testdata/posts.json", "--dry-run", "--sleep", "0s")
	require.NoError(t, err)
	assert.Contains(t, out, "(dry run)")
	assert.Equal(t, 0, *acquired, "dry runs take no lock")
	assert.Equal(t, 0, store.Calls().Writes())
}

func TestMigrateCommandJSON(t *testing.T) {
	store := memstore.New()
	mock, _, _ := newMock(store, "json")

	out, err := run(t, mock, "--pinboard-json", "testdata/posts.json", "--sleep", "0s", "--limit", "1")
	require.NoError(t, err)

	var got summary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Counts["created"])
	assert.Equal(t, 4, got.SourceEntries)
	assert.Equal(t, 1, got.NextOffset)
	assert.NotEmpty(t, got.RunID)
}

func TestMigrateCommandRequiresSource(t *testing.T) {
	mock, _, _ := newMock(memstore.New(), "table")
	_, err := run(t, mock)
	assert.True(t, errors.IsConfig(err))

	_, err = run(t, mock, "--pinboard-json", "x.json", "--fetch-pinboard")
	assert.Error(t, err, "file and API sources are exclusive")
}

func TestMigrateCommandBadRules(t *testing.T) {
	store := memstore.New()
	mock, _, _ := newMock(store, "table")

	rulesFile := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(rulesFile, []byte(`[{"collection_id": 5}]`), 0o600))

	_, err := run(t, mock, "--pinboard-json", "testdata/posts.json", "--collection-map", rulesFile)
	assert.True(t, errors.IsConfig(err))
	assert.Equal(t, 0, store.Calls().Find, "nothing is processed with bad rules")
}

func TestMigrateCommandFailuresAndReport(t *testing.T) {
	store := memstore.New()
	store.FailURL("https://go.dev/doc/effective_go", errors.NewAPIError("raindrop", 500, "boom"))
	mock, _, _ := newMock(store, "table")

	dir := t.TempDir()
	reportFile := filepath.Join(dir, "run.jsonl")
	metricsFile := filepath.Join(dir, "marksync.prom")

	out, err := run(t, mock,
		"--pinboard-json", "testdata/posts.json",
		"--sleep", "0s",
		"--report", reportFile,
		"--metrics-file", metricsFile,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 bookmarks failed")
	assert.Contains(t, out, "boom")

	data, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 4, "one line per source entry")
	assert.Contains(t, lines[0], `"kind":"failed"`)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `marksync_outcomes_total{kind="created"} 2`)
}

func TestMigrateCommandLocked(t *testing.T) {
	store := memstore.New()
	mock, _, _ := newMock(store, "table")
	mock.LockFunc = func() (cmdapp.Releaser, error) {
		return nil, errors.ErrLocked
	}

	_, err := run(t, mock, "--pinboard-json", "testdata/posts.json")
	assert.ErrorIs(t, err, errors.ErrLocked)
	assert.Equal(t, 0, store.Calls().Writes())
}
