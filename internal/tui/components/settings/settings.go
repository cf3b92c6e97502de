package settings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daylog/internal/models"
)

type EditSettingsMsg struct{}

type SendTestMsg struct{}

type SignOutMsg struct{}

type KeyMap struct {
	Edit    key.Binding
	Test    key.Binding
	SignOut key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit reminder"),
		),
		Test: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "test notification"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sign out"),
		),
	}
}

type Model struct {
	settings models.NotificationSettings
	user     *models.User
	keys     KeyMap
	width    int
	height   int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

func New(settings models.NotificationSettings, user *models.User) Model {
	return Model{
		settings: settings,
		user:     user,
		keys:     DefaultKeyMap(),
	}
}

func (m *Model) SetSettings(settings models.NotificationSettings) {
	m.settings = settings
}

func (m *Model) SetUser(user *models.User) {
	m.user = user
}

func (m Model) User() *models.User {
	return m.user
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Edit):
			return m, func() tea.Msg { return EditSettingsMsg{} }
		case key.Matches(msg, m.keys.Test):
			return m, func() tea.Msg { return SendTestMsg{} }
		case key.Matches(msg, m.keys.SignOut):
			return m, func() tea.Msg { return SignOutMsg{} }
		}
	}
	return m, nil
}

func row(label, value string) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(label), valueStyle.Render(value))
}

func (m Model) View() string {
	var sections []string

	status := "off"
	if m.settings.Enabled {
		status = "on"
	}
	reminder := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Daily Reminder"),
		row("Enabled:", status),
		row("Time:", m.settings.Time),
	)
	sections = append(sections, sectionStyle.Render(reminder))

	account := []string{titleStyle.Render("Account")}
	if m.user != nil {
		account = append(account, row("Signed in:", m.user.DisplayName()))
		if m.user.IsAnonymous {
			account = append(account, row("Id:", m.user.ID))
		}
	} else {
		account = append(account, row("Signed in:", "nobody"))
	}
	sections = append(sections, sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, account...)))

	helpText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		MarginTop(1).
		Render("Press 'e' to edit the reminder, 't' to send a test, 'o' to sign out")
	sections = append(sections, helpText)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
