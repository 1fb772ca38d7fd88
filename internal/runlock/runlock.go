// Package runlock keeps two mutating marksync runs from writing to the same
// destination at once.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/agentstation/marksync/pkg/constants"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/logging"
)

// Lock is an exclusive advisory file lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// DefaultPath returns the lock file location in the user cache directory,
// falling back to the temp directory.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "marksync", constants.LockFileName)
}

// Acquire takes the lock at path without blocking. It fails with
// errors.ErrLocked when another process holds it.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", filepath.Dir(path), err)
	}
	l := &Lock{path: path, lock: flock.New(path)}
	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, errors.WrapIO("lock", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: another marksync run holds %s", errors.ErrLocked, path)
	}
	logging.Debug().Str("lock", path).Msg("Acquired run lock")
	return l, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. It is safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return errors.WrapIO("unlock", l.path, err)
	}
	return nil
}
