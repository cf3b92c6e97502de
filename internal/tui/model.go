// Package tui is the interactive daylog screen: today's question, the answer
// history and the reminder settings, behind a guest or sign-in prompt.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/journal"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/questions"
	"github.com/julianstephens/daylog/internal/reminder"
	"github.com/julianstephens/daylog/internal/tui/components/history"
	"github.com/julianstephens/daylog/internal/tui/components/settings"
	"github.com/julianstephens/daylog/internal/tui/components/today"
)

// Deps are the repositories the screens read and write.
type Deps struct {
	Answers   *journal.AnswerRepository
	Reminders *reminder.Service
	Session   *journal.Session
	Clock     journal.Clock
}

type SettingsFormModel struct {
	Enabled bool
	Time    string
}

const (
	authGuest  = "guest"
	authSignIn = "signin"
)

type AuthFormModel struct {
	Mode  string
	Email string
	Name  string
}

type Model struct {
	answers   *journal.AnswerRepository
	reminders *reminder.Service
	session   *journal.Session

	state         constants.SessionState
	keys          KeyMap
	help          help.Model
	todayModel    today.Model
	historyModel  history.Model
	settingsModel settings.Model

	form         *huh.Form
	settingsForm *SettingsFormModel
	authForm     *AuthFormModel

	dateToDelete string
	status       string
	statusErr    bool
	quitting     bool
	width        int
	height       int
}

func NewModel(deps Deps) Model {
	date := deps.Answers.Today()
	m := Model{
		answers:       deps.Answers,
		reminders:     deps.Reminders,
		session:       deps.Session,
		state:         constants.StateToday,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		todayModel:    today.New(date, questions.ForDate(date), todayAnswer(deps.Answers)),
		historyModel:  history.New(deps.Answers.History(), 0, 0),
		settingsModel: settings.New(deps.Reminders.Settings(), currentUser(deps.Session)),
	}

	if _, ok := deps.Session.Current(); !ok {
		m.startAuth()
	}
	return m
}

func todayAnswer(answers *journal.AnswerRepository) *models.Answer {
	if a, ok := answers.GetTodayAnswer(); ok {
		return &a
	}
	return nil
}

func currentUser(session *journal.Session) *models.User {
	if u, ok := session.Current(); ok {
		return &u
	}
	return nil
}

// State is the screen currently shown.
func (m Model) State() constants.SessionState {
	return m.state
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateToday:
		if m.todayModel.Editing() {
			return []key.Binding{m.keys.Save, m.keys.ForceQuit}
		}
		keys = append(keys, m.keys.Edit)
	case constants.StateHistory:
		keys = append(keys, m.keys.Enter, m.keys.Delete)
	case constants.StateSettings:
		keys = append(keys, m.keys.Edit, m.keys.Test, m.keys.SignOut)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateToday:
		actions = []key.Binding{m.keys.Edit, m.keys.Save}
	case constants.StateHistory:
		actions = []key.Binding{m.keys.Delete}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Edit, m.keys.Test, m.keys.SignOut}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

// refreshToday reloads the Today tab, moving it to the new day after midnight.
func (m *Model) refreshToday() {
	date := m.answers.Today()
	answer := todayAnswer(m.answers)
	if date != m.todayModel.Date() {
		m.todayModel.SetDay(date, questions.ForDate(date), answer)
		return
	}
	if !m.todayModel.Editing() {
		m.todayModel.SetAnswer(answer)
	}
}

func (m *Model) refreshHistory() {
	m.historyModel.SetAnswers(m.answers.History())
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string, err error) {
	m.status = msg + ": " + err.Error()
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}
