package migrate_test

import (
	"testing"
	"time"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/migrate"
	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	o := migrate.Defaults()

	assert.Equal(t, bookmarks.CollectionUnsorted, o.TargetCollection)
	assert.Nil(t, o.ReadLaterCollection)
	assert.Equal(t, "toread", o.ReadLaterTag)
	assert.True(t, o.SkipExisting)
	assert.False(t, o.MergeTags)
	assert.False(t, o.DryRun)
	assert.Equal(t, 200*time.Millisecond, o.Pacing)
	assert.NoError(t, o.Validate())
}

func TestApply(t *testing.T) {
	o := migrate.Defaults().Apply(
		migrate.WithTargetCollection(10),
		migrate.WithReadLaterCollection(20),
		migrate.WithReadLaterTag(""),
		migrate.WithMergeTags(true),
		migrate.WithSkipExisting(false),
		migrate.WithLimit(5),
		migrate.WithOffset(3),
		migrate.WithDryRun(true),
		migrate.WithLowercaseTags(true),
		migrate.WithPacing(0),
	)

	require.NotNil(t, o.ReadLaterCollection)
	assert.Equal(t, bookmarks.CollectionID(20), *o.ReadLaterCollection)

	ro := o.RouterOptions()
	assert.Equal(t, bookmarks.CollectionID(10), ro.Default)
	assert.Empty(t, ro.ReadLaterTag)
	assert.Len(t, o.ReconcilerOptions(), 4)
	assert.NoError(t, o.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		opt  migrate.Option
	}{
		{"negative limit", migrate.WithLimit(-1)},
		{"negative offset", migrate.WithOffset(-2)},
		{"negative pacing", migrate.WithPacing(-time.Second)},
		{"collection zero", migrate.WithTargetCollection(0)},
		{"read-later zero", migrate.WithReadLaterCollection(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := migrate.Defaults().Apply(tt.opt).Validate()
			require.Error(t, err)
			assert.True(t, errors.IsConfig(err))
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestResult(t *testing.T) {
	r := migrate.NewResult("run-1", false)

	r.Record(reconciler.Outcome{Kind: reconciler.KindCreated, URL: "https://a"})
	r.Record(reconciler.Outcome{Kind: reconciler.KindCreated, URL: "https://b"})
	r.Record(reconciler.Outcome{Kind: reconciler.KindSkipped, URL: "https://c", Reason: "already exists"})
	r.Record(reconciler.Outcome{Kind: reconciler.KindFailed, URL: "https://d", Reason: "boom"})
	r.Record(reconciler.Invalid(bookmarks.Candidate{Index: 7, Err: errors.NewDataError(7, "href", "missing URL")}))
	r.Finish()

	assert.Equal(t, 2, r.Count(reconciler.KindCreated))
	assert.Equal(t, 2, r.Count(reconciler.KindSkipped))
	assert.Equal(t, 5, r.Total())
	assert.Equal(t, 1, r.Invalid)
	assert.True(t, r.HasFailures())
	require.Len(t, r.Problems, 2)
	assert.Equal(t, "https://d", r.Problems[0].Where())
	assert.Equal(t, "entry #7", r.Problems[1].Where())
	assert.GreaterOrEqual(t, r.Duration(), time.Duration(0))

	assert.Equal(t, "2 created, 0 merged, 2 skipped, 1 failed", r.Summary())
}

func TestResultSummaryDryRunInterrupted(t *testing.T) {
	r := migrate.NewResult("run-2", true)
	r.Record(reconciler.Outcome{Kind: reconciler.KindDryRunPlanned})
	r.Interrupted = true
	r.NextOffset = 12

	assert.Equal(t, "0 created, 0 merged, 0 skipped, 1 dry run planned, 0 failed (dry run) (interrupted, resume with --offset 12)", r.Summary())
	assert.False(t, r.HasFailures())
}
