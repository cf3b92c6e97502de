package journal

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/models"
)

// Session drives sign-in, sign-out and guest access over a UserRepository.
type Session struct {
	users *UserRepository
	clock Clock
}

func NewSession(users *UserRepository, clock Clock) *Session {
	return &Session{users: users, clock: clock}
}

// Current returns the signed-in user, if any.
func (s *Session) Current() (models.User, bool) {
	return s.users.GetUser()
}

// SignIn stores user as the current identity. Empty optional fields are stored as null.
func (s *Session) SignIn(user models.User) error {
	user.ID = strings.TrimSpace(user.ID)
	if user.ID == "" {
		return ErrInvalidUser
	}
	user.Email = nonEmpty(user.Email)
	user.FullName = nonEmpty(user.FullName)

	if err := s.users.SaveUser(user); err != nil {
		return err
	}
	logger.Info("Signed in", "id", user.ID, "anonymous", user.IsAnonymous)
	return nil
}

// ContinueAsGuest creates and stores a fresh anonymous user. The id is the
// guest prefix, the capture time in milliseconds and a short random suffix, so
// two guests created in the same millisecond still differ.
func (s *Session) ContinueAsGuest() (models.User, error) {
	user := models.User{
		ID:          NewGuestID(s.clock.now().UnixMilli()),
		IsAnonymous: true,
	}
	if err := s.users.SaveUser(user); err != nil {
		return models.User{}, err
	}
	logger.Info("Continuing as guest", "id", user.ID)
	return user, nil
}

// SignOut forgets the current user. Journal entries are kept.
func (s *Session) SignOut() error {
	if err := s.users.ClearUser(); err != nil {
		return err
	}
	logger.Info("Signed out")
	return nil
}

// NewGuestID builds a guest identifier for the given capture time.
func NewGuestID(unixMilli int64) string {
	return fmt.Sprintf("%s%d_%s", constants.GuestIDPrefix, unixMilli, uuid.NewString()[:8])
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
