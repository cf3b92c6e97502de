package journal

import (
	"errors"
	"testing"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/validation"
)

func TestGetSettingsDefault(t *testing.T) {
	repo := NewSettingsRepository(newFaultyStore())
	want := models.NotificationSettings{Enabled: false, Time: "20:00"}
	if got := repo.GetSettings(); got != want {
		t.Errorf("GetSettings() = %+v, want %+v", got, want)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	repo := NewSettingsRepository(newFaultyStore())
	for _, s := range []models.NotificationSettings{
		{Enabled: true, Time: "09:30"},
		{Enabled: false, Time: "07:05"},
		{Enabled: true, Time: "23:59"},
	} {
		if err := repo.SaveSettings(s); err != nil {
			t.Fatalf("SaveSettings(%+v) error = %v", s, err)
		}
		if got := repo.GetSettings(); got != s {
			t.Errorf("GetSettings() = %+v, want %+v", got, s)
		}
	}
}

func TestSettingsToggleScenario(t *testing.T) {
	repo := NewSettingsRepository(newFaultyStore())

	s := repo.GetSettings()
	s.Enabled = true
	if err := repo.SaveSettings(s); err != nil {
		t.Fatal(err)
	}
	s = repo.GetSettings()
	s.Time = "09:30"
	if err := repo.SaveSettings(s); err != nil {
		t.Fatal(err)
	}

	want := models.NotificationSettings{Enabled: true, Time: "09:30"}
	if got := repo.GetSettings(); got != want {
		t.Errorf("GetSettings() = %+v, want %+v", got, want)
	}
}

func TestGetSettingsBestEffort(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*faultyStore)
		want  models.NotificationSettings
	}{
		{"read failure", func(s *faultyStore) { s.failGet = true }, models.DefaultNotificationSettings()},
		{"corrupt", func(s *faultyStore) { _ = s.MemoryStore.Set(constants.SettingsKey, "not json") }, models.DefaultNotificationSettings()},
		{
			name:  "missing time gets the default",
			setup: func(s *faultyStore) { _ = s.MemoryStore.Set(constants.SettingsKey, `{"enabled":true}`) },
			want:  models.NotificationSettings{Enabled: true, Time: "20:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFaultyStore()
			tt.setup(store)
			if got := NewSettingsRepository(store).GetSettings(); got != tt.want {
				t.Errorf("GetSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSaveSettingsPropagates(t *testing.T) {
	store := newFaultyStore()
	store.failSet = true
	err := NewSettingsRepository(store).SaveSettings(models.NotificationSettings{Enabled: true, Time: "09:30"})
	if !errors.Is(err, errStoreDown) {
		t.Errorf("SaveSettings() error = %v, want %v", err, errStoreDown)
	}
}

func TestSaveSettingsRejectsInvalidTime(t *testing.T) {
	tests := []struct {
		name string
		time string
	}{
		{"empty", ""},
		{"no colon", "0930"},
		{"out of range", "25:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFaultyStore()
			repo := NewSettingsRepository(store)
			err := repo.SaveSettings(models.NotificationSettings{Enabled: true, Time: tt.time})
			if !errors.Is(err, validation.ErrInvalidTime) {
				t.Errorf("SaveSettings(%q) error = %v, want %v", tt.time, err, validation.ErrInvalidTime)
			}
			if store.sets != 0 {
				t.Errorf("store written %d times, want 0", store.sets)
			}
		})
	}
}
