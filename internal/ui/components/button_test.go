package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func testConfirm(yes, no *int) Confirm {
	return NewConfirm("Yes, do it", "No, go back",
		func() tea.Cmd { *yes++; return nil },
		func() tea.Cmd { *no++; return nil })
}

func TestConfirm_Shortcuts(t *testing.T) {
	var yes, no int
	c := testConfirm(&yes, &no)

	c, _ = c.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if yes != 1 {
		t.Errorf("yes fired %d times, want 1", yes)
	}

	c, _ = c.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if no != 2 {
		t.Errorf("no fired %d times, want 2 (n and esc)", no)
	}
}

func TestConfirm_EnterFiresFocusedButton(t *testing.T) {
	var yes, no int
	c := testConfirm(&yes, &no)

	// Focus starts on no.
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if no != 1 || yes != 0 {
		t.Fatalf("enter fired yes=%d no=%d, want no only", yes, no)
	}

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if !c.Yes.Focus || c.No.Focus {
		t.Fatal("left did not move focus to yes")
	}
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if yes != 1 {
		t.Errorf("enter on focused yes fired %d times, want 1", yes)
	}
}

func TestConfirm_View(t *testing.T) {
	var yes, no int
	c := testConfirm(&yes, &no)
	v := c.View()
	if !strings.Contains(v, "Yes, do it") || !strings.Contains(v, "No, go back") {
		t.Errorf("view missing button labels: %q", v)
	}
}
