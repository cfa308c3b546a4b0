package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coinwise/internal/currency"
	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/ui/theme"
)

// CoinPicker lets a student build a pile of coins and notes. The
// student moves across the tray of available denominations and adds
// or removes pieces; the picker keeps the running total.
type CoinPicker struct {
	Tray     []currency.Denomination
	Picked   []string
	Cursor   int
	MaxItems int
	Locked   bool
}

// NewCoinPicker creates a picker offering the given denomination IDs.
// An empty allowed list offers the whole catalog.
func NewCoinPicker(allowed []string, maxItems int) CoinPicker {
	var tray []currency.Denomination
	if len(allowed) == 0 {
		tray = currency.All()
	} else {
		for _, id := range allowed {
			if d, ok := currency.ByID(id); ok {
				tray = append(tray, d)
			}
		}
	}
	return CoinPicker{
		Tray:     tray,
		MaxItems: maxItems,
	}
}

// Init returns nil.
func (c CoinPicker) Init() tea.Cmd {
	return nil
}

// Update handles tray navigation and pile edits.
func (c CoinPicker) Update(msg tea.Msg) (CoinPicker, tea.Cmd) {
	if c.Locked {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "right", "l":
		if c.Cursor < len(c.Tray)-1 {
			c.Cursor++
		}
	case "enter", "space", " ":
		if c.Cursor >= 0 && c.Cursor < len(c.Tray) {
			if c.MaxItems <= 0 || len(c.Picked) < c.MaxItems {
				c.Picked = append(c.Picked, c.Tray[c.Cursor].ID)
			}
		}
	case "backspace", "delete":
		if len(c.Picked) > 0 {
			c.Picked = c.Picked[:len(c.Picked)-1]
		}
	}

	return c, nil
}

// Total returns the dollar value of the current pile.
func (c CoinPicker) Total() float64 {
	total, _ := currency.Sum(c.Picked)
	return total
}

// SetPicked replaces the pile, used when restoring a saved answer.
func (c *CoinPicker) SetPicked(ids []string) {
	c.Picked = append([]string(nil), ids...)
}

func denomFace(d currency.Denomination) string {
	if d.IsCoin() {
		return theme.CoinFace.Render(d.Label)
	}
	return theme.NoteFace.Render(d.Label)
}

// View renders the tray, the pile, and the running total.
func (c CoinPicker) View() string {
	var tray []string
	for i, d := range c.Tray {
		face := denomFace(d)
		if i == c.Cursor && !c.Locked {
			face = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Primary).
				Render(face)
		} else {
			face = lipgloss.NewStyle().
				Border(lipgloss.HiddenBorder()).
				Render(face)
		}
		tray = append(tray, face)
	}

	s := lipgloss.JoinHorizontal(lipgloss.Center, tray...) + "\n\n"

	if len(c.Picked) == 0 {
		s += theme.Hint.Render("Pick coins and notes to build your amount.") + "\n"
	} else {
		var pile []string
		for _, id := range c.Picked {
			if d, ok := currency.ByID(id); ok {
				pile = append(pile, denomFace(d))
			}
		}
		s += lipgloss.JoinHorizontal(lipgloss.Center, pile...) + "\n"
	}

	s += "\n" + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Total: "+quiz.FormatAmount(c.Total())) + "\n"

	return s
}
