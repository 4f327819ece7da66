package os

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFileLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "probe.lock")
	lock, err := NewFileLock(path)
	if err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Fatalf("lock file %v was not created", path)
	}

	other, err := NewFileLock(path)
	if err != nil {
		t.Fatal(err)
	}

	err = lock.WithLock(func() error {
		ok, err := other.TryLock()
		if err != nil {
			return err
		}
		if ok {
			t.Error("second lock acquired while the first is held")
			_ = other.Unlock()
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	ok, err := other.TryLock()
	if err != nil || !ok {
		t.Errorf("lock not free after WithLock: ok=%v err=%v", ok, err)
	}
	_ = other.Unlock()

	boom := errors.New("boom")
	if err := lock.WithLock(func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("WithLock error = %v, want boom", err)
	}
}
