package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/daylog/internal/migration"
	"github.com/julianstephens/daylog/internal/storage"
	"github.com/julianstephens/daylog/internal/storage/storagetest"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "daylog.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProvider(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Provider {
		return setupTestStore(t)
	})
}

func TestLoadUninitialized(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := s.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want %v", err, storage.ErrNotInitialized)
	}
	if _, _, err := s.Get("k"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("Get() before load error = %v, want %v", err, storage.ErrNotLoaded)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "daylog.db")

	s := NewStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := s.Set("@daily_journal_user", `{"id":"guest_1","email":null,"fullName":null,"isAnonymous":true}`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	s.Close()

	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0700 {
		t.Errorf("config dir mode = %o, want 700", perm)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get("@daily_journal_user")
	if err != nil || !ok {
		t.Fatalf("Get() = (%q, %v, %v)", v, ok, err)
	}
	if v != `{"id":"guest_1","email":null,"fullName":null,"isAnonymous":true}` {
		t.Errorf("Get() = %q", v)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	again := NewStore(s.GetConfigPath())
	if err := again.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	defer again.Close()
	if v, ok, _ := again.Get("k"); !ok || v != "v" {
		t.Errorf("Get() after re-init = (%q, %v)", v, ok)
	}
}

func TestLoadRejectsNewerSchema(t *testing.T) {
	s := setupTestStore(t)
	if err := migration.NewRunner(s.GetDB(), nil, migration.SQLite).SetVersion(99); err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}
	s.Close()

	reopened := NewStore(s.GetConfigPath())
	defer reopened.Close()
	if err := reopened.Load(); !errors.Is(err, migration.ErrSchemaTooNew) {
		t.Errorf("Load() error = %v, want %v", err, migration.ErrSchemaTooNew)
	}
}

func TestMigrateUpToDate(t *testing.T) {
	s := setupTestStore(t)
	n, err := s.Migrate(nil)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Migrate() applied %d, want 0 on a fresh store", n)
	}
}

func TestSchemaVersion(t *testing.T) {
	s := setupTestStore(t)
	current, latest, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if current != latest || latest < 1 {
		t.Errorf("SchemaVersion() = %d, %d, want equal and at least 1", current, latest)
	}

	if _, _, err := NewStore(filepath.Join(t.TempDir(), "x.db")).SchemaVersion(); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("SchemaVersion() before load error = %v, want %v", err, storage.ErrNotLoaded)
	}
}
