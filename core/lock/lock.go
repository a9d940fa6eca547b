package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process already holds the lock.
var ErrLocked = errors.New("another prepare run holds the lock")

// RunLock guards a data directory against concurrent prepare runs.
type RunLock struct {
	path string
	lock *flock.Flock
}

// New returns an unlocked RunLock backed by the file at path.
func New(path string) *RunLock {
	return &RunLock{path: path, lock: flock.New(path)}
}

// Path returns the lock file location.
func (l *RunLock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. It returns ErrLocked when the lock is held.
func (l *RunLock) Acquire() error {
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create lock dir: %w", err)
		}
	}
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (%s)", ErrLocked, l.path)
	}
	return nil
}

// Release unlocks the file. Releasing an unlocked RunLock is a no-op.
func (l *RunLock) Release() error {
	if !l.lock.Locked() {
		return nil
	}
	return l.lock.Unlock()
}
