package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/screen"
	"github.com/abhisek/coinwise/internal/store"
	"github.com/abhisek/coinwise/internal/tracker"
	"github.com/abhisek/coinwise/internal/ui/layout"
	"github.com/abhisek/coinwise/internal/ui/theme"
)

type attemptsLoadedMsg struct {
	Attempts []*store.Attempt
	Err      error
}

type detailLoadedMsg struct {
	AttemptID string
	Answers   []store.StoredAnswer
	Err       error
}

// HistoryScreen shows one student's past attempts with expandable
// per-question details.
type HistoryScreen struct {
	st       *store.Store
	registry *quiz.Registry
	student  *store.Student

	attempts []*store.Attempt
	details  map[string][]store.StoredAnswer
	expanded map[int]bool
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen for the given student.
func New(st *store.Store, registry *quiz.Registry, student *store.Student) *HistoryScreen {
	return &HistoryScreen{
		st:       st,
		registry: registry,
		student:  student,
		details:  make(map[string][]store.StoredAnswer),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		attempts, err := s.st.Attempts().ListByStudent(context.Background(), s.student.ID)
		if err != nil {
			return attemptsLoadedMsg{Err: err}
		}
		return attemptsLoadedMsg{Attempts: attempts}
	}
}

func (s *HistoryScreen) Title() string {
	return s.student.Name + "'s History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case detailLoadedMsg:
		if msg.Err == nil {
			s.details[msg.AttemptID] = msg.Answers
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s.toggleDetail()
		}
	}
	return s, nil
}

func (s *HistoryScreen) toggleDetail() (screen.Screen, tea.Cmd) {
	if s.selected >= len(s.attempts) {
		return s, nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]

	a := s.attempts[s.selected]
	if _, ok := s.details[a.ID]; ok || !s.expanded[s.selected] {
		return s, nil
	}
	return s, func() tea.Msg {
		_, answers, err := s.st.Attempts().LoadAttempt(context.Background(), a.ID)
		return detailLoadedMsg{AttemptID: a.ID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes played yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		title := a.QuizID
		var q *quiz.Quiz
		if def, ok := s.registry.Get(a.QuizID); ok {
			q = def
			title = def.Title
		}

		status := lipgloss.NewStyle().Foreground(theme.Secondary).Render("in progress")
		if a.Completed() {
			status = fmt.Sprintf("%.0f/%.0f  (%.0f%%)", a.Score, a.MaxScore, a.Percent)
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %s",
			prefix, a.StartedAt.Format("Jan 02, 2006"), title, status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			s.renderDetail(&b, width, a, q)
		}
	}

	return b.String()
}

// renderDetail lists the stored answers of one attempt. Correctness is
// recomputed from the current quiz definition rather than trusted from
// the stored rows.
func (s *HistoryScreen) renderDetail(b *strings.Builder, width int, a *store.Attempt, q *quiz.Quiz) {
	answers, ok := s.details[a.ID]
	if !ok {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    Loading details...")))
		b.WriteString("\n")
		return
	}
	if len(answers) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No answers recorded")))
		b.WriteString("\n")
		return
	}

	for _, sa := range answers {
		var line string
		style := lipgloss.NewStyle().Foreground(theme.TextDim)

		if sa.Status == string(tracker.StatusSkipped) {
			line = fmt.Sprintf("    Q%d  skipped", sa.QuestionID)
		} else if q != nil {
			if question, found := q.QuestionByID(sa.QuestionID); found {
				res := quiz.Validate(question, sa.Answer)
				if res.Correct {
					line = fmt.Sprintf("    Q%d  ✓", sa.QuestionID)
					style = style.Foreground(theme.Success)
				} else {
					line = fmt.Sprintf("    Q%d  ✗  %s", sa.QuestionID, res.Feedback)
					style = style.Foreground(theme.Error)
				}
			}
		}
		if line == "" {
			line = fmt.Sprintf("    Q%d  %s", sa.QuestionID, sa.Status)
		}

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
}
