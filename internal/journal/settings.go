package journal

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/storage"
	"github.com/julianstephens/daylog/internal/validation"
)

// SettingsRepository holds the single notification-settings record.
type SettingsRepository struct {
	store storage.Provider
}

func NewSettingsRepository(store storage.Provider) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// SaveSettings overwrites the stored settings. The time must be a valid HH:MM
// so that what is saved is exactly what GetSettings returns.
func (r *SettingsRepository) SaveSettings(settings models.NotificationSettings) error {
	if err := validation.Clock(settings.Time); err != nil {
		return err
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := r.store.Set(constants.SettingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// GetSettings returns the stored settings, or the defaults when nothing usable is stored.
func (r *SettingsRepository) GetSettings() models.NotificationSettings {
	raw, ok, err := r.store.Get(constants.SettingsKey)
	if err != nil {
		logger.Error("Error getting settings", "error", err)
		return models.DefaultNotificationSettings()
	}
	if !ok || raw == "" {
		return models.DefaultNotificationSettings()
	}

	var settings models.NotificationSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		logger.Error("Error getting settings", "error", fmt.Errorf("%w: %v", ErrCorruptRecord, err))
		return models.DefaultNotificationSettings()
	}
	models.ApplyDefaultSettings(&settings)
	return settings
}
