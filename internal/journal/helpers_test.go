package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/daylog/internal/storage"
)

var errStoreDown = errors.New("store unavailable")

// faultyStore wraps a MemoryStore and fails the selected operations.
type faultyStore struct {
	*storage.MemoryStore
	failGet    bool
	failSet    bool
	failRemove bool
	sets       int
}

func newFaultyStore() *faultyStore {
	return &faultyStore{MemoryStore: storage.NewMemoryStore()}
}

func (s *faultyStore) Get(key string) (string, bool, error) {
	if s.failGet {
		return "", false, errStoreDown
	}
	return s.MemoryStore.Get(key)
}

func (s *faultyStore) Set(key, value string) error {
	if s.failSet {
		return errStoreDown
	}
	s.sets++
	return s.MemoryStore.Set(key, value)
}

func (s *faultyStore) Remove(key string) error {
	if s.failRemove {
		return errStoreDown
	}
	return s.MemoryStore.Remove(key)
}

// fakeClock is a settable clock for pinning "today".
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock(t *testing.T, value string) *fakeClock {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		t.Fatalf("bad clock value %q: %v", value, err)
	}
	return &fakeClock{t: ts}
}
