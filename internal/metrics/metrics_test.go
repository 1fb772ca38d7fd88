package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/marksync/pkg/migrate"
	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/agentstation/marksync/pkg/suggest"
)

func TestRecorderCounts(t *testing.T) {
	r := New()
	r.Outcome(reconciler.Outcome{Kind: reconciler.KindCreated})
	r.Outcome(reconciler.Outcome{Kind: reconciler.KindCreated})
	r.Outcome(reconciler.Outcome{Kind: reconciler.KindFailed})
	r.Suggestion(suggest.StatusMoved)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.outcomes.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.outcomes.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.outcomes.WithLabelValues("merged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.suggestions.WithLabelValues("moved")))
}

func TestRecorderWriteFile(t *testing.T) {
	r := New()
	res := migrate.NewResult("run-1", false)
	res.UnmanagedDuplicates = 3
	res.Finish()

	r.Outcome(reconciler.Outcome{Kind: reconciler.KindSkipped})
	r.Migration(res)

	path := filepath.Join(t.TempDir(), "marksync.prom")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `marksync_outcomes_total{kind="skipped"} 1`))
	assert.True(t, strings.Contains(text, "marksync_unmanaged_duplicates 3"))
	assert.True(t, strings.Contains(text, "marksync_last_run_timestamp_seconds"))
}
