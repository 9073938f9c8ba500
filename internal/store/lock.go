// Package store provides the CLI's on-disk snapshot handling: a
// flock-guarded read-modify-write cycle around a single JSON snapshot file,
// so two kdvec CLI invocations against the same file never interleave
// their writes.
package store

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"github.com/nearbyte/kdvec"
)

// FileLock guards a snapshot file with an OS-level exclusive lock, using a
// sibling ".lock" file so the lock survives the snapshot file itself being
// replaced mid-write.
type FileLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewFileLock returns a FileLock for the snapshot at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		path:  path,
		flock: flock.New(path + ".lock"),
	}
}

// Lock acquires an exclusive lock, blocking until it is available.
func (l *FileLock) Lock() error {
	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("acquire snapshot lock: %w", err)
	}
	l.locked = true
	return nil
}

// Unlock releases the lock. Safe to call on an unlocked FileLock.
func (l *FileLock) Unlock() error {
	if !l.locked {
		return nil
	}
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release snapshot lock: %w", err)
	}
	l.locked = false
	return nil
}

// Load reads and deserializes the Index at path. A missing file yields a
// fresh, empty Index rather than an error — the first "add" against a path
// that doesn't exist yet should create it.
func Load(path string) (*kdvec.Index, error) {
	blob, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return kdvec.Build(kdvec.Resource{})
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	ix, err := kdvec.Deserialize(blob)
	if err != nil {
		return nil, fmt.Errorf("deserialize snapshot %s: %w", path, err)
	}
	return ix, nil
}

// Save serializes ix and writes it to path, replacing any existing file.
func Save(path string, ix *kdvec.Index) error {
	blob, err := ix.Serialize()
	if err != nil {
		return fmt.Errorf("serialize snapshot: %w", err)
	}
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

// WithLock runs fn while holding path's FileLock, releasing it on return.
func WithLock(path string, fn func() error) error {
	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()
	return fn()
}
