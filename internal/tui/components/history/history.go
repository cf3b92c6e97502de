package history

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/utils"
)

type DeleteAnswerMsg struct {
	Date string
}

type Item struct {
	Answer models.Answer
}

func (i Item) Title() string {
	return utils.FormatShortDate(i.Answer.Date) + "  " + i.Answer.QuestionText
}

func (i Item) Description() string {
	return firstLine(i.Answer.Answer)
}

func (i Item) FilterValue() string {
	return i.Answer.Date + " " + i.Answer.QuestionText + " " + i.Answer.Answer
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx] + " …"
	}
	return s
}

type KeyMap struct {
	Open   key.Binding
	Close  key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "read"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			MarginBottom(1)
)

// Model lists past answers newest first. Enter opens the selected answer in a
// scrollable reader.
type Model struct {
	list    list.Model
	reader  viewport.Model
	keys    KeyMap
	reading bool
}

func New(answers []models.Answer, width, height int) Model {
	l := list.New(toItems(answers), list.NewDefaultDelegate(), width, height)
	l.Title = "History"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Delete}
	}

	return Model{
		list:   l,
		reader: viewport.New(width, height),
		keys:   keys,
	}
}

func toItems(answers []models.Answer) []list.Item {
	items := make([]list.Item, len(answers))
	for i, a := range answers {
		items[i] = Item{Answer: a}
	}
	return items
}

func (m *Model) SetAnswers(answers []models.Answer) {
	m.list.SetItems(toItems(answers))
	m.reading = false
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
	m.reader.Width = width
	m.reader.Height = height
}

// Busy reports whether the component is consuming keys itself (filtering or
// reading), so global shortcuts should not fire.
func (m Model) Busy() bool {
	return m.reading || m.list.FilterState() == list.Filtering
}

func (m Model) Reading() bool {
	return m.reading
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Selected returns the highlighted answer.
func (m Model) Selected() (models.Answer, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Answer, true
	}
	return models.Answer{}, false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.reading {
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Close) {
			m.reading = false
			return m, nil
		}
		m.reader, cmd = m.reader.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Open):
			if a, ok := m.Selected(); ok {
				m.reader.SetContent(renderAnswer(a, m.reader.Width))
				m.reader.GotoTop()
				m.reading = true
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteAnswerMsg{Date: a.Date} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func renderAnswer(a models.Answer, width int) string {
	body := a.Answer
	if width > 0 {
		body = lipgloss.NewStyle().Width(width).Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		dateStyle.Render(utils.FormatDisplayDate(a.Date)),
		questionStyle.Render(a.QuestionText),
		body,
	)
}

func (m Model) View() string {
	if m.reading {
		return m.reader.View()
	}
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No answers yet.\n  Answer today's question on the Today tab."
	}
	return m.list.View()
}
