package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/coinwise/internal/ui/theme"
)

// Button is one selectable action in a dialog.
type Button struct {
	Label string
	Focus bool
}

// NewButton creates a new button.
func NewButton(label string, focus bool) Button {
	return Button{Label: label, Focus: focus}
}

// View renders the button.
func (b Button) View() string {
	label := " " + b.Label + " "
	if b.Focus {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// Confirm is a yes/no button pair for overlay dialogs. Focus starts
// on no so a stray enter never fires the committing choice; y and n
// remain direct shortcuts.
type Confirm struct {
	Yes   Button
	No    Button
	OnYes func() tea.Cmd
	OnNo  func() tea.Cmd
}

// NewConfirm creates a confirm pair with focus on the no button.
func NewConfirm(yesLabel, noLabel string, onYes, onNo func() tea.Cmd) Confirm {
	return Confirm{
		Yes:   NewButton(yesLabel, false),
		No:    NewButton(noLabel, true),
		OnYes: onYes,
		OnNo:  onNo,
	}
}

// Update handles key events.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "y", "Y":
		return c, fire(c.OnYes)
	case "n", "N", "esc":
		return c, fire(c.OnNo)
	case "left", "right", "tab", "h", "l":
		c.Yes.Focus = !c.Yes.Focus
		c.No.Focus = !c.No.Focus
	case "enter":
		if c.Yes.Focus {
			return c, fire(c.OnYes)
		}
		return c, fire(c.OnNo)
	}
	return c, nil
}

// View renders the pair side by side.
func (c Confirm) View() string {
	return c.Yes.View() + "   " + c.No.View()
}

func fire(f func() tea.Cmd) tea.Cmd {
	if f == nil {
		return nil
	}
	return f()
}
