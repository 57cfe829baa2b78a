package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jazzmini/jsquiz/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// ChoiceKeys are the bindings understood by MultiChoice.
type ChoiceKeys struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
}

// DefaultChoiceKeys returns arrow/vim navigation with Enter to choose.
func DefaultChoiceKeys() ChoiceKeys {
	return ChoiceKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "answer")),
	}
}

// ChosenMsg is emitted once when the user picks an option.
type ChosenMsg struct {
	Option string
}

// MultiChoice is a multiple-choice selector. After a choice is made it
// only renders; the correct and chosen options are highlighted.
type MultiChoice struct {
	Question string
	Options  []string
	Answer   string
	Cursor   int
	Chosen   string
	Keys     ChoiceKeys
}

// NewMultiChoice creates a selector for options.
func NewMultiChoice(question string, options []string, answer string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Answer:   answer,
		Keys:     DefaultChoiceKeys(),
	}
}

// Answered reports whether an option has been chosen.
func (m MultiChoice) Answered() bool {
	return m.Chosen != ""
}

// Update handles keyboard navigation and selection. Letter keys (a, b, ...)
// choose directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Answered() {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case key.Matches(kmsg, m.Keys.Down):
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case key.Matches(kmsg, m.Keys.Choose):
		return m.choose(m.Cursor)
	}

	s := kmsg.String()
	if len(s) == 1 {
		if i := int(s[0] - 'a'); i >= 0 && i < len(m.Options) {
			m.Cursor = i
			return m.choose(i)
		}
	}
	return m, nil
}

func (m MultiChoice) choose(i int) (MultiChoice, tea.Cmd) {
	if i < 0 || i >= len(m.Options) {
		return m, nil
	}
	m.Chosen = m.Options[i]
	opt := m.Chosen
	return m, func() tea.Msg { return ChosenMsg{Option: opt} }
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Cursor && !m.Answered() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case m.Answered() && opt == m.Answer:
			style = theme.Correct
		case m.Answered() && opt == m.Chosen:
			style = theme.Incorrect
		case m.Answered():
			style = theme.Muted
		case i == m.Cursor:
			style = theme.OptionCursor
		default:
			style = theme.Option
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
