package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/daylog/internal/storage"
	"github.com/julianstephens/daylog/internal/storage/storagetest"
)

func TestMemoryStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Provider {
		return storage.NewMemoryStore()
	})
}

func TestJSONStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Provider {
		s := storage.NewJSONStore(filepath.Join(t.TempDir(), "daylog.json"))
		if err := s.Init(); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		return s
	})
}

func TestJSONStorePersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "daylog.json")

	s := storage.NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := s.Set("@daily_journal_settings", `{"enabled":true,"time":"09:30"}`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	reopened := storage.NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	v, ok, err := reopened.Get("@daily_journal_settings")
	if err != nil || !ok || v != `{"enabled":true,"time":"09:30"}` {
		t.Errorf("Get() after reload = (%q, %v, %v)", v, ok, err)
	}

	// Init on an existing file keeps its contents.
	again := storage.NewJSONStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	if _, ok, _ := again.Get("@daily_journal_settings"); !ok {
		t.Error("Init() on an existing file dropped stored keys")
	}
}

func TestJSONStoreNotLoaded(t *testing.T) {
	s := storage.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))

	if err := s.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want %v", err, storage.ErrNotInitialized)
	}
	if _, _, err := s.Get("k"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("Get() error = %v, want %v", err, storage.ErrNotLoaded)
	}
	if err := s.Set("k", "v"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("Set() error = %v, want %v", err, storage.ErrNotLoaded)
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daylog.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := storage.NewJSONStore(path).Load(); err == nil {
		t.Error("Load() of a corrupt file should fail")
	}
}

func TestJSONStoreFailedWriteKeepsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daylog.json")
	s := storage.NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := s.Set("kept", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// A directory in place of the file makes every write fail
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(path, 0700); err != nil {
		t.Fatal(err)
	}

	if err := s.Set("kept", "v2"); err == nil {
		t.Fatal("Set() should fail when the file cannot be written")
	}
	if err := s.Set("new", "x"); err == nil {
		t.Fatal("Set() of a new key should fail when the file cannot be written")
	}
	if err := s.Remove("kept"); err == nil {
		t.Fatal("Remove() should fail when the file cannot be written")
	}

	if v, ok, _ := s.Get("kept"); !ok || v != "v1" {
		t.Errorf("Get(kept) = (%q, %v), want the last written value v1", v, ok)
	}
	if _, ok, _ := s.Get("new"); ok {
		t.Error("Get(new) found a value that was never written")
	}
	if keys, _ := s.Keys(); len(keys) != 1 {
		t.Errorf("Keys() = %v, want [kept]", keys)
	}
}
