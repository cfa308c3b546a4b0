package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coinwise/internal/router"
	"github.com/abhisek/coinwise/internal/screen"
	"github.com/abhisek/coinwise/internal/store"
	"github.com/abhisek/coinwise/internal/tracker"
	"github.com/abhisek/coinwise/internal/ui/components"
	"github.com/abhisek/coinwise/internal/ui/layout"
	"github.com/abhisek/coinwise/internal/ui/theme"
)

// SummaryScreen shows the final score after an attempt completes.
type SummaryScreen struct {
	student *store.Student
	tracker *tracker.Tracker
	score   tracker.ScoreSummary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen over a completed attempt.
func New(student *store.Student, t *tracker.Tracker, score tracker.ScoreSummary) *SummaryScreen {
	return &SummaryScreen{
		student: student,
		tracker: t,
		score:   score,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Your Score"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, tea.Batch(
				func() tea.Msg { return screen.ActiveStudentMsg{} },
				func() tea.Msg { return router.PopScreenMsg{} },
			)
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	headline := "Well done"
	if s.student != nil {
		headline = fmt.Sprintf("Well done, %s!", s.student.Name)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(headline))
	b.WriteString("\n\n")

	scoreLine := fmt.Sprintf("Score: %.0f out of %.0f  (%.0f%%)",
		s.score.Score, s.score.Max, s.score.Percent)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(scoreLine))
	b.WriteString("\n")

	bar := components.NewProgressBar("", int(s.score.Score+0.5), int(s.score.Max+0.5), min(width-8, 48))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Questions")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, q := range s.tracker.Quiz().Questions {
		state, ok := s.tracker.State(q.ID)
		if !ok {
			continue
		}

		var mark, note string
		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case state.Status == tracker.StatusAnswered:
			mark = "✓"
			style = style.Foreground(theme.Success)
		case state.Status == tracker.StatusSubmitted:
			mark = "✗"
			style = style.Foreground(theme.Error)
			if state.Result != nil && state.Result.Feedback != "" {
				note = "  " + state.Result.Feedback
			}
		case state.Status == tracker.StatusSkipped:
			mark = "–"
			style = style.Foreground(theme.TextDim)
			note = "  skipped"
		default:
			mark = "·"
			style = style.Foreground(theme.TextDim)
			note = "  not answered"
		}

		line := fmt.Sprintf("  %s  Q%d  %s%s", mark, q.ID, truncate(q.Prompt, 44), note)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

// truncate shortens s to at most n runes with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
