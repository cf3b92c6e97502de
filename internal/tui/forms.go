package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/reminder"
	"github.com/julianstephens/daylog/internal/validation"
)

// NewSettingsForm creates the reminder settings form
func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Daily reminder").
				Affirmative("On").
				Negative("Off").
				Value(&fm.Enabled),
			huh.NewInput().
				Title("Reminder time").
				Description("24-hour HH:MM, local time").
				Value(&fm.Time).
				Validate(validation.Clock),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewAuthForm creates the guest or sign-in prompt
func NewAuthForm(fm *AuthFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome to daylog").
				Description("Answer one question a day.").
				Options(
					huh.NewOption("Continue as guest", authGuest),
					huh.NewOption("Sign in", authSignIn),
				).
				Value(&fm.Mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fm.Email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Name").
				Description("Optional").
				Value(&fm.Name),
		).WithHideFunc(func() bool { return fm.Mode != authSignIn }),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) startAuth() tea.Cmd {
	m.authForm = &AuthFormModel{Mode: authGuest}
	m.form = NewAuthForm(m.authForm)
	m.state = constants.StateAuth
	return m.form.Init()
}

func (m *Model) startEditSettings() tea.Cmd {
	current := m.reminders.Settings()
	m.settingsForm = &SettingsFormModel{
		Enabled: current.Enabled,
		Time:    current.Time,
	}
	m.form = NewSettingsForm(m.settingsForm)
	m.state = constants.StateEditSettings
	return m.form.Init()
}

// applySettings stores the edited reminder. The time goes first so enabling
// schedules at the new time.
func (m *Model) applySettings(fm SettingsFormModel) error {
	current := m.reminders.Settings()
	if fm.Time != current.Time {
		if err := m.reminders.SetTime(fm.Time); err != nil {
			return err
		}
	}
	if fm.Enabled != current.Enabled {
		if err := m.reminders.SetEnabled(fm.Enabled); err != nil {
			if errors.Is(err, reminder.ErrPermissionDenied) {
				return fmt.Errorf("%w (is the daylog tray running?)", err)
			}
			return err
		}
	}
	return nil
}

// completeAuth signs in as a guest or with the typed identity. The email is
// also the user id.
func (m *Model) completeAuth(fm AuthFormModel) (models.User, error) {
	if fm.Mode != authSignIn {
		return m.session.ContinueAsGuest()
	}
	email := strings.TrimSpace(fm.Email)
	name := fm.Name
	user := models.User{ID: email, Email: &email, FullName: &name}
	if err := m.session.SignIn(user); err != nil {
		return models.User{}, err
	}
	signedIn, _ := m.session.Current()
	return signedIn, nil
}
