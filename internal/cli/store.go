package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/keyring"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/storage"
	"github.com/julianstephens/daylog/internal/storage/postgres"
	"github.com/julianstephens/daylog/internal/storage/redis"
	"github.com/julianstephens/daylog/internal/storage/sqlite"
)

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ResolveConfig decides where the journal lives. DAYLOG_DB_CONNECTION wins,
// then a connection string kept in the OS keyring (only while --config is
// left at its default), then the flag itself. trusted is true when the value
// came from one of the secret sources.
func ResolveConfig(flag string) (config string, trusted bool) {
	if env := os.Getenv(constants.EnvDBConnection); env != "" {
		return env, true
	}
	if flag == constants.DefaultConfigPath {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			return connStr, true
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup failed", "error", err)
		}
	}
	return flag, false
}

// NewStore picks a storage backend for config: PostgreSQL and Redis URLs
// select those servers, a .json path selects the JSON file store and
// anything else is a SQLite database file. A trusted value may also be a
// key=value PostgreSQL DSN.
func NewStore(config string, trusted bool) (storage.Provider, error) {
	switch {
	case postgres.IsConnString(config), trusted && strings.Contains(config, "host="):
		if _, err := postgres.ValidateConnString(config); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
			if !trusted {
				return nil, fmt.Errorf("%w: store the connection string with 'daylog keyring set', export %s or use a .pgpass file",
					err, constants.EnvDBConnection)
			}
		}
		return postgres.New(config), nil
	case redis.IsURL(config):
		return redis.New(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// IsFileBacked reports whether the store keeps the journal in a local file.
func IsFileBacked(store storage.Provider) bool {
	switch store.(type) {
	case *sqlite.Store, *storage.JSONStore:
		return true
	}
	return false
}
