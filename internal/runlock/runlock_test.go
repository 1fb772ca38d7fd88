package runlock

import (
	"path/filepath"
	"testing"

	"github.com/agentstation/marksync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "marksync.lock")

	first, err := Acquire(path)
	require.NoError(t, err)
	assert.Equal(t, path, first.Path())

	_, err = Acquire(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrLocked)

	require.NoError(t, first.Release())

	again, err := Acquire(path)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	assert.NoError(t, l.Release())
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "marksync.lock", filepath.Base(DefaultPath()))
}
