package reconciler_test

import (
	"context"
	"testing"
	"time"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/reconciler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerFirstCallDoesNotWait(t *testing.T) {
	p := reconciler.NewPacer(time.Hour)

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
}

func TestPacerSpacesCalls(t *testing.T) {
	p := reconciler.NewPacer(50 * time.Millisecond)
	p.Done()

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestPacerHonorsContext(t *testing.T) {
	p := reconciler.NewPacer(time.Hour)
	p.Done()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, p.Wait(ctx))
}

func TestPacerNil(t *testing.T) {
	var p *reconciler.Pacer
	assert.NoError(t, p.Wait(context.Background()))
	assert.NotPanics(t, p.Done)
	assert.Zero(t, p.Delay())
}

func TestSkipsAreNotPaced(t *testing.T) {
	w := &recordingWriter{}
	r := newReconciler(t, w, reconciler.WithPacing(time.Hour))

	// A skip never writes, so it must not block behind the pacer.
	start := time.Now()
	for i := 0; i < 3; i++ {
		out := r.Reconcile(context.Background(), candidate(), decision(), existing())
		assert.Equal(t, reconciler.KindSkipped, out.Kind)
	}
	out := r.Reconcile(context.Background(), candidate(), decision(), bookmarks.NotFound)
	assert.Equal(t, reconciler.KindCreated, out.Kind)
	assert.Less(t, time.Since(start), time.Second)
}
