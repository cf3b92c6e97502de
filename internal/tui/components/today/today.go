package today

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/utils"
)

// SaveAnswerMsg asks the parent to persist the typed answer.
type SaveAnswerMsg struct {
	Text string
}

type KeyMap struct {
	Edit   key.Binding
	Save   key.Binding
	Cancel key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "write"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop editing"),
		),
	}
}

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("236")).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			MarginTop(1)
)

// Model shows today's question and the answer editor.
type Model struct {
	date     string
	question models.Question
	answer   *models.Answer
	input    textarea.Model
	keys     KeyMap
	editing  bool
	width    int
	height   int
}

func New(date string, question models.Question, answer *models.Answer) Model {
	ta := textarea.New()
	ta.Placeholder = "Write your answer..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false

	m := Model{
		date:     date,
		question: question,
		input:    ta,
		keys:     DefaultKeyMap(),
	}
	m.SetAnswer(answer)
	return m
}

// SetAnswer replaces the stored answer and resets the editor to its text.
func (m *Model) SetAnswer(answer *models.Answer) {
	m.answer = answer
	if answer != nil {
		m.input.SetValue(answer.Answer)
	} else {
		m.input.Reset()
	}
}

// SetDay moves the view to a new day, e.g. after midnight.
func (m *Model) SetDay(date string, question models.Question, answer *models.Answer) {
	m.date = date
	m.question = question
	m.editing = false
	m.input.Blur()
	m.SetAnswer(answer)
}

func (m Model) Date() string {
	return m.date
}

func (m Model) Question() models.Question {
	return m.question
}

func (m Model) Answered() bool {
	return m.answer != nil
}

func (m Model) Editing() bool {
	return m.editing
}

func (m Model) Value() string {
	return m.input.Value()
}

// Done leaves edit mode after a successful save.
func (m *Model) Done() {
	m.editing = false
	m.input.Blur()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(max(width-4, 20))
	m.input.SetHeight(max(height-8, 3))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.editing {
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Edit) {
			m.editing = true
			return m, m.input.Focus()
		}
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Save):
			text := m.input.Value()
			return m, func() tea.Msg { return SaveAnswerMsg{Text: text} }
		case key.Matches(msg, m.keys.Cancel):
			m.editing = false
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	parts := []string{
		dateStyle.Render(utils.FormatDisplayDate(m.date)),
		questionStyle.Render(m.question.Text),
	}

	switch {
	case m.editing:
		label := "Save"
		if m.answer != nil {
			label = "Update"
		}
		parts = append(parts,
			m.input.View(),
			hintStyle.Render("ctrl+s: "+label+" • esc: stop editing"),
		)
	case m.answer != nil:
		parts = append(parts,
			answerStyle.Render(strings.TrimSpace(m.answer.Answer)),
			hintStyle.Render("Press 'e' to update today's answer"),
		)
	default:
		parts = append(parts, hintStyle.Render("Press 'e' to answer"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
