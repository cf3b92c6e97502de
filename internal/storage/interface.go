package storage

import "errors"

var (
	// ErrNotLoaded is returned by data operations on a store that was neither initialized nor loaded.
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrNotInitialized is returned by Load when the backing file does not exist yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'daylog init' first")
)

// Provider is a persistent string key-value store. Values are opaque serialized
// text; the journal repositories own their encoding.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Keys lists the stored keys in lexical order.
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
