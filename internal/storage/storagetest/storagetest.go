// Package storagetest holds behaviour checks shared by every storage.Provider backend.
package storagetest

import (
	"slices"
	"testing"

	"github.com/julianstephens/daylog/internal/storage"
)

// Run exercises the key-value contract against a freshly initialized provider.
// newStore must return a provider on which Init has already succeeded and that
// holds no keys.
func Run(t *testing.T, newStore func(t *testing.T) storage.Provider) {
	t.Helper()

	t.Run("missing key is absent", func(t *testing.T) {
		s := newStore(t)
		v, ok, err := s.Get("@daily_journal_user")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok || v != "" {
			t.Errorf("Get() = (%q, %v), want (\"\", false)", v, ok)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		value := `[{"date":"2024-06-01","questionId":3,"questionText":"q","answer":"coffee","createdAt":1}]`
		if err := s.Set("@daily_journal_answers", value); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, ok, err := s.Get("@daily_journal_answers")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !ok || got != value {
			t.Errorf("Get() = (%q, %v), want (%q, true)", got, ok, value)
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := newStore(t)
		for _, v := range []string{`{"enabled":false,"time":"20:00"}`, `{"enabled":true,"time":"09:30"}`} {
			if err := s.Set("@daily_journal_settings", v); err != nil {
				t.Fatalf("Set(%q) error = %v", v, err)
			}
		}
		got, _, err := s.Get("@daily_journal_settings")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != `{"enabled":true,"time":"09:30"}` {
			t.Errorf("Get() = %q, want the last written value", got)
		}
	})

	t.Run("remove", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set("@daily_journal_user", `{"id":"guest_1"}`); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := s.Remove("@daily_journal_user"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, ok, _ := s.Get("@daily_journal_user"); ok {
			t.Error("key still present after Remove()")
		}
		if err := s.Remove("@daily_journal_user"); err != nil {
			t.Errorf("Remove() of a missing key error = %v, want nil", err)
		}
	})

	t.Run("keys sorted", func(t *testing.T) {
		s := newStore(t)
		for _, k := range []string{"b", "a", "c"} {
			if err := s.Set(k, "x"); err != nil {
				t.Fatalf("Set(%q) error = %v", k, err)
			}
		}
		keys, err := s.Keys()
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		if !slices.Equal(keys, []string{"a", "b", "c"}) {
			t.Errorf("Keys() = %v, want [a b c]", keys)
		}
	})

	t.Run("empty value is stored", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set("k", ""); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		v, ok, err := s.Get("k")
		if err != nil || !ok || v != "" {
			t.Errorf("Get() = (%q, %v, %v), want (\"\", true, nil)", v, ok, err)
		}
	})
}
