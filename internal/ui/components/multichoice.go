package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. It tracks the student's
// selection only; grading happens elsewhere.
type MultiChoice struct {
	Options  []quiz.Option
	Selected int
	Locked   bool
}

// NewMultiChoice creates a new multiple-choice selector.
func NewMultiChoice(options []quiz.Option) MultiChoice {
	return MultiChoice{
		Options:  options,
		Selected: 0,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}

	return m, nil
}

// Choice returns the ID of the currently selected option.
func (m MultiChoice) Choice() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected].ID
}

// Select moves the cursor to the option with the given ID, if present.
func (m *MultiChoice) Select(optionID string) {
	for i, opt := range m.Options {
		if opt.ID == optionID {
			m.Selected = i
			return
		}
	}
}

// View renders the option list.
func (m MultiChoice) View() string {
	labels := []string{"A", "B", "C", "D", "E", "F"}

	var s string
	for i, opt := range m.Options {
		label := "?"
		if i < len(labels) {
			label = labels[i]
		}
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt.Label)

		if i == m.Selected {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
