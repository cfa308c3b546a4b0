package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/coinwise/internal/tracker"
	"github.com/abhisek/coinwise/internal/ui/components"
	"github.com/abhisek/coinwise/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if !s.ready {
		return renderLoading(width)
	}
	if s.showingQuit {
		return s.renderQuitConfirm(width)
	}
	if s.showingFinish {
		return s.renderFinishConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

// renderQuestionView renders the active question and its input widget.
func (s *PlayScreen) renderQuestionView(width int) string {
	q := s.question()
	progress := s.coord.Tracker().Progress()
	score := s.coord.Tracker().Score()

	var b strings.Builder

	statusStr := ""
	if state, ok := s.coord.Tracker().State(q.ID); ok {
		switch state.Status {
		case tracker.StatusSkipped:
			statusStr = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("  skipped")
		case tracker.StatusAnswered:
			statusStr = lipgloss.NewStyle().Foreground(theme.Success).Render("  ✓")
		case tracker.StatusSubmitted:
			statusStr = lipgloss.NewStyle().Foreground(theme.Error).Render("  ✗ try again")
		}
	}

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.index+1, s.questionCount())) + statusStr

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %.0f/%.0f",
			lipgloss.NewStyle().Foreground(theme.Primary).Render("★"),
			score.Score, score.Max,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	bar := components.NewProgressBar("", progress.Submitted+progress.Answered, progress.Total, min(width-8, 48))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	promptStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(promptStyle.Render(q.Prompt))
	b.WriteString("\n\n")

	var widget string
	switch s.active {
	case inputPicker:
		widget = s.picker.View()
	case inputOrder:
		widget = s.order.View()
	case inputChoice:
		widget = s.choice.View()
	default:
		widget = "Answer: " + s.input.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, widget))

	if s.saveNotice {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("Couldn't save that — your answers are safe until you leave."))
	}

	return b.String()
}

// renderFeedback renders the post-submit feedback overlay.
func (s *PlayScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	if s.feedback.Correct {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
	}

	if s.feedback.Feedback != "" {
		b.WriteString("\n\n")
		fb := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(s.feedback.Feedback)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, fb))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

// renderFinishConfirm renders the finish confirmation dialog.
func (s *PlayScreen) renderFinishConfirm(width int) string {
	progress := s.coord.Tracker().Progress()

	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Finish the quiz?"))
	b.WriteString("\n")

	if progress.Pending+progress.Skipped > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d question(s) have no answer yet.", progress.Pending+progress.Skipped)))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("All questions are done. Nice work!"))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.confirm.View()))

	return b.String()
}

// renderQuitConfirm renders the leave confirmation dialog.
func (s *PlayScreen) renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave the quiz?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your answers are saved — you can pick up where you left off."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.confirm.View()))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Getting your quiz ready...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
