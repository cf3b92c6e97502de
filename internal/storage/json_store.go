package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type fileData struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// JSONStore keeps every key in a single indented JSON document that is
// rewritten on each change.
type JSONStore struct {
	path string
	data *fileData
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	return s.commit(1, make(map[string]string))
}

func (s *JSONStore) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	data := &fileData{}
	if err := json.Unmarshal(raw, data); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if data.Values == nil {
		data.Values = make(map[string]string)
	}
	s.data = data
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// commit writes values to disk and only then makes them the in-memory state,
// so a failed write leaves Get answering from what is actually on disk.
func (s *JSONStore) commit(version int, values map[string]string) error {
	next := &fileData{Version: version, Values: values}
	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	s.data = next
	return nil
}

// withValues returns a copy of the current values with fn applied.
func (s *JSONStore) withValues(fn func(map[string]string)) map[string]string {
	values := make(map[string]string, len(s.data.Values)+1)
	for k, v := range s.data.Values {
		values[k] = v
	}
	fn(values)
	return values
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	if s.data == nil {
		return "", false, ErrNotLoaded
	}
	v, ok := s.data.Values[key]
	return v, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	if s.data == nil {
		return ErrNotLoaded
	}
	values := s.withValues(func(m map[string]string) { m[key] = value })
	return s.commit(s.data.Version, values)
}

func (s *JSONStore) Remove(key string) error {
	if s.data == nil {
		return ErrNotLoaded
	}
	if _, ok := s.data.Values[key]; !ok {
		return nil
	}
	values := s.withValues(func(m map[string]string) { delete(m, key) })
	return s.commit(s.data.Version, values)
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.data == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.data.Values))
	for k := range s.data.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
