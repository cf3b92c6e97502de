package journal

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/storage"
)

// UserRepository holds the single current-user record.
type UserRepository struct {
	store storage.Provider
}

func NewUserRepository(store storage.Provider) *UserRepository {
	return &UserRepository{store: store}
}

// SaveUser replaces the stored user wholesale.
func (r *UserRepository) SaveUser(user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := r.store.Set(constants.UserKey, string(data)); err != nil {
		return fmt.Errorf("failed to write user: %w", err)
	}
	return nil
}

// GetUser returns the stored user, if any.
func (r *UserRepository) GetUser() (models.User, bool) {
	raw, ok, err := r.store.Get(constants.UserKey)
	if err != nil {
		logger.Error("Error getting user", "error", err)
		return models.User{}, false
	}
	if !ok || raw == "" {
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Error("Error getting user", "error", fmt.Errorf("%w: %v", ErrCorruptRecord, err))
		return models.User{}, false
	}
	return user, true
}

// ClearUser removes the stored user.
func (r *UserRepository) ClearUser() error {
	if err := r.store.Remove(constants.UserKey); err != nil {
		return fmt.Errorf("failed to clear user: %w", err)
	}
	return nil
}
