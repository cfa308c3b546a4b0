package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestProgressBar_Counter(t *testing.T) {
	p := NewProgressBar("Progress", 3, 10, 40)
	v := p.View()
	if !strings.Contains(v, "3/10") {
		t.Errorf("view missing counter: %q", v)
	}
	if !strings.Contains(v, "Progress") {
		t.Errorf("view missing label: %q", v)
	}
}

func TestProgressBar_ClampsDoneAboveTotal(t *testing.T) {
	over := NewProgressBar("", 12, 10, 40).View()
	full := NewProgressBar("", 10, 10, 40).View()
	if strings.Replace(over, "12/10", "10/10", 1) != full {
		t.Error("done above total must fill the bar exactly")
	}
}

func TestProgressBar_RendersToWidth(t *testing.T) {
	// Out-of-range done values still render a bar of the asked width.
	for _, done := range []int{-1, 0, 5, 10, 12} {
		v := NewProgressBar("", done, 10, 40).View()
		if w := lipgloss.Width(v); w != 40 {
			t.Errorf("done=%d rendered width = %d, want 40", done, w)
		}
	}
}

func TestProgressBar_ZeroTotal(t *testing.T) {
	v := NewProgressBar("", 0, 0, 40).View()
	if !strings.Contains(v, "0/0") {
		t.Errorf("view = %q, want 0/0 counter", v)
	}
}
