package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coinwise/internal/currency"
	"github.com/abhisek/coinwise/internal/ui/theme"
)

// OrderList lets a student rearrange a sequence of denominations.
// A piece is grabbed with enter, carried up or down the list, and
// dropped with enter again.
type OrderList struct {
	Items   []string
	Cursor  int
	Grabbed bool
	Locked  bool
}

// NewOrderList creates an order list over the given denomination IDs,
// presented in the given starting order.
func NewOrderList(ids []string) OrderList {
	return OrderList{
		Items: append([]string(nil), ids...),
	}
}

// Init returns nil.
func (o OrderList) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement and item reordering.
func (o OrderList) Update(msg tea.Msg) (OrderList, tea.Cmd) {
	if o.Locked {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			if o.Grabbed {
				o.Items[o.Cursor], o.Items[o.Cursor-1] = o.Items[o.Cursor-1], o.Items[o.Cursor]
			}
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Items)-1 {
			if o.Grabbed {
				o.Items[o.Cursor], o.Items[o.Cursor+1] = o.Items[o.Cursor+1], o.Items[o.Cursor]
			}
			o.Cursor++
		}
	case "enter", "space", " ":
		o.Grabbed = !o.Grabbed
	}

	return o, nil
}

// Order returns the current arrangement.
func (o OrderList) Order() []string {
	return append([]string(nil), o.Items...)
}

// SetOrder replaces the arrangement, used when restoring a saved answer.
func (o *OrderList) SetOrder(ids []string) {
	o.Items = append([]string(nil), ids...)
	if o.Cursor >= len(o.Items) {
		o.Cursor = 0
	}
}

// View renders the list vertically with the grab state highlighted.
func (o OrderList) View() string {
	var s string
	for i, id := range o.Items {
		d, ok := currency.ByID(id)
		if !ok {
			continue
		}

		face := denomFace(d)
		switch {
		case i == o.Cursor && o.Grabbed:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("⇅ ") + face + "\n"
		case i == o.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ") + face + "\n"
		default:
			s += "  " + face + "\n"
		}
	}

	if o.Grabbed {
		s += "\n" + theme.Hint.Render("Move with ↑/↓, drop with enter.")
	} else {
		s += "\n" + theme.Hint.Render("Grab with enter, then move it.")
	}

	return s
}
