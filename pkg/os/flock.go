package os

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

type Flock struct {
	f *flock.Flock
}

// NewFileLock prepares an exclusive lock at path, creating the file and
// its directory if needed. An empty path uses glprobe.lock in the temp dir.
func NewFileLock(path string) (*Flock, error) {
	if path == "" {
		path = filepath.Join(os.TempDir(), "glprobe.lock")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0660)
	if err != nil {
		return nil, err
	}
	_ = f.Close()

	return &Flock{f: flock.New(path)}, nil
}

func (f *Flock) Lock() error { return f.f.Lock() }
func (f *Flock) Unlock() error { return f.f.Unlock() }

// TryLock takes the lock without blocking and reports whether it did.
func (f *Flock) TryLock() (bool, error) { return f.f.TryLock() }

// WithLock runs fn while holding the lock.
func (f *Flock) WithLock(fn func() error) (err error) {
	if err = f.Lock(); err != nil {
		return err
	}
	defer func() {
		if uerr := f.Unlock(); err == nil {
			err = uerr
		}
	}()
	return fn()
}
