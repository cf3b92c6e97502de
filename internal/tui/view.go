package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateToday:
		content = docStyle.Render(m.todayModel.View())
	case constants.StateHistory:
		content = docStyle.Render(m.historyModel.View())
	case constants.StateSettings:
		content = docStyle.Render(m.settingsModel.View())
	case constants.StateAuth:
		return lipgloss.JoinVertical(lipgloss.Left,
			docStyle.Render(m.form.View()),
			m.viewStatus(),
		)
	case constants.StateEditSettings:
		content = docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Edit reminder"),
			m.form.View(),
		))
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Today", "History", "Settings"}
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	if u := m.settingsModel.User(); u != nil {
		tabs = append(tabs, userStyle.Render("· "+u.DisplayName()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return dangerStyle.Render(m.status)
	}
	return successStyle.Render(m.status)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete your answer for %s?", utils.FormatDisplayDate(m.dateToDelete))),
			"This cannot be undone.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
