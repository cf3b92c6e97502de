package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing journal before initialization."`
	Source string `help:"Journal path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized daylog storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Force && !cli.IsFileBacked(ctx.Store) {
		if err := clearAll(ctx.Store); err != nil {
			return fmt.Errorf("failed to clear existing journal: %w", err)
		}
	}

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		n, err := c.copyFrom(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Migration completed successfully! Copied %d records.\n", n)
	}
	return nil
}

// reset deletes a file-backed journal. Server-backed journals are cleared
// after Init instead.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if !cli.IsFileBacked(ctx.Store) {
		return nil
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		src, err := cli.ExpandPath(c.Source)
		if err == nil {
			if absSource, err := filepath.Abs(src); err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		// Close first so the file is not locked
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing journal: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing journal: %w", err)
		}
		ctx.Printf("Deleted existing journal at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing journal: %w", err)
	}
	return nil
}

func clearAll(store storage.Provider) error {
	keys, err := store.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := store.Remove(key); err != nil {
			return err
		}
	}
	return nil
}

// copyFrom copies every stored record from the --source journal. The records
// are opaque to the copy, so answers, settings and the user travel as-is.
func (c *InitCmd) copyFrom(ctx *cli.Context) (int, error) {
	source, err := cli.NewStore(c.Source, false)
	if err != nil {
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source journal: %w", err)
	}
	defer source.Close()

	keys, err := source.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source records: %w", err)
	}

	copied := 0
	for _, key := range keys {
		value, ok, err := source.Get(key)
		if err != nil {
			return copied, fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := ctx.Store.Set(key, value); err != nil {
			return copied, fmt.Errorf("failed to write %s: %w", key, err)
		}
		ctx.Printf("  Copied %s\n", key)
		copied++
	}
	return copied, nil
}

type MigrateCmd struct{}

type migrator interface {
	Migrate(logFn func(string)) (int, error)
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		ctx.Println("This storage backend has no schema to migrate.")
		return nil
	}

	count, err := m.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
