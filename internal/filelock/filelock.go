// Package filelock provides advisory per-environment file locking so that
// multiple venvctl processes pointed at the same environment root do not race
// on creation and removal.
package filelock

import (
	"fmt"
	"strings"

	"github.com/gofrs/flock"
)

// Lock is an advisory lock guarding one environment root. The lock file
// lives beside the environment directory, not inside it, so a clearing
// rebuild does not delete the lock out from under its holder.
type Lock struct {
	flock *flock.Flock
	path  string
}

// ForEnvironment returns the lock guarding the environment at root.
func ForEnvironment(root string) *Lock {
	path := strings.TrimRight(root, "/\\") + ".lock"
	return &Lock{
		flock: flock.New(path),
		path:  path,
	}
}

// Lock acquires the lock, blocking until it is available.
func (l *Lock) Lock() error {
	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("acquire environment lock %s: %w", l.path, err)
	}
	return nil
}

// TryLock attempts to acquire the lock without blocking. It reports whether
// the lock was acquired.
func (l *Lock) TryLock() (bool, error) {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("try environment lock %s: %w", l.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (l *Lock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release environment lock %s: %w", l.path, err)
	}
	return nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}
