package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/questions"
	"github.com/julianstephens/daylog/internal/tui/components/history"
	"github.com/julianstephens/daylog/internal/tui/components/settings"
	"github.com/julianstephens/daylog/internal/tui/components/today"
	"github.com/julianstephens/daylog/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		h, v := docStyle.GetFrameSize()
		// tabs, status and help lines
		contentHeight := msg.Height - v - 4
		m.todayModel.SetSize(msg.Width-h, contentHeight)
		m.historyModel.SetSize(msg.Width-h, contentHeight)
		m.settingsModel.SetSize(msg.Width-h, contentHeight)
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width - h)
		}
		return m, nil
	}

	switch m.state {
	case constants.StateAuth:
		return m.updateAuth(msg)
	case constants.StateEditSettings:
		return m.updateEditSettings(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case today.SaveAnswerMsg:
		m.saveAnswer(msg.Text)
		return m, nil

	case history.DeleteAnswerMsg:
		m.dateToDelete = msg.Date
		m.state = constants.StateConfirmDelete
		return m, nil

	case settings.EditSettingsMsg:
		m.clearStatus()
		return m, m.startEditSettings()

	case settings.SendTestMsg:
		if err := m.reminders.SendTest(); err != nil {
			m.setError("Failed to send test notification", err)
		} else {
			m.setStatus("✓ Test notification sent")
		}
		return m, nil

	case settings.SignOutMsg:
		if err := m.session.SignOut(); err != nil {
			m.setError("Failed to sign out", err)
			return m, nil
		}
		m.settingsModel.SetUser(nil)
		m.clearStatus()
		return m, m.startAuth()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.busy() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Tab):
				m.switchTab((m.state + 1) % constants.NumMainTabs)
				return m, nil
			case key.Matches(msg, m.keys.ShiftTab):
				m.switchTab((m.state - 1 + constants.NumMainTabs) % constants.NumMainTabs)
				return m, nil
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case constants.StateHistory:
		m.historyModel, cmd = m.historyModel.Update(msg)
	case constants.StateSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	return m, cmd
}

// busy reports whether the active tab is taking raw keystrokes.
func (m Model) busy() bool {
	switch m.state {
	case constants.StateToday:
		return m.todayModel.Editing()
	case constants.StateHistory:
		return m.historyModel.Busy()
	}
	return false
}

func (m *Model) switchTab(state constants.SessionState) {
	m.state = state
	m.clearStatus()
	switch state {
	case constants.StateToday:
		m.refreshToday()
	case constants.StateHistory:
		m.refreshHistory()
	case constants.StateSettings:
		m.settingsModel.SetSettings(m.reminders.Settings())
	}
}

func (m *Model) saveAnswer(text string) {
	if err := validation.AnswerText(text); err != nil {
		m.setError("Cannot save", err)
		return
	}

	// Stamp with the question of the day the answer is filed under
	date := m.answers.Today()
	q := questions.ForDate(date)
	_, existed := m.answers.GetAnswer(date)
	if err := m.answers.SaveAnswer(text, q.ID, q.Text); err != nil {
		m.setError("Failed to save answer", err)
		return
	}

	m.todayModel.Done()
	m.refreshToday()
	m.refreshHistory()
	if existed {
		m.setStatus("✓ Answer updated")
	} else {
		m.setStatus("✓ Answer saved")
	}
}

func (m Model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		user, err := m.completeAuth(*m.authForm)
		if err != nil {
			m.setError("Sign in failed", err)
			return m, m.startAuth()
		}
		m.form = nil
		m.authForm = nil
		m.settingsModel.SetUser(&user)
		m.setStatus("Welcome, " + user.DisplayName())
		m.state = constants.StateToday
		m.refreshToday()
		m.refreshHistory()
	case huh.StateAborted:
		// The journal is unusable without an identity
		m.quitting = true
		return m, tea.Quit
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateEditSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.form = nil
		m.state = constants.StateSettings
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.applySettings(*m.settingsForm); err != nil {
			m.setError("Failed to update reminder", err)
		} else {
			m.setStatus("✓ Reminder updated")
		}
		m.form = nil
		m.settingsModel.SetSettings(m.reminders.Settings())
		m.state = constants.StateSettings
	case huh.StateAborted:
		m.form = nil
		m.state = constants.StateSettings
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if m.dateToDelete != "" {
				if err := m.answers.DeleteAnswer(m.dateToDelete); err != nil {
					m.setError("Failed to delete answer", err)
				} else {
					m.setStatus("✓ Deleted answer for " + m.dateToDelete)
					m.refreshHistory()
					m.refreshToday()
				}
				m.dateToDelete = ""
			}
			m.state = constants.StateHistory
		case "n", "N", "esc":
			m.dateToDelete = ""
			m.state = constants.StateHistory
		}
	}
	return m, nil
}
