package storage

import (
	"testing"

	"github.com/gofrs/flock"
)

func newLockHolder(t *testing.T, path string) *flock.Flock {
	t.Helper()
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil || !locked {
		t.Fatalf("failed to take lock %s: locked=%v err=%v", path, locked, err)
	}
	return fl
}
