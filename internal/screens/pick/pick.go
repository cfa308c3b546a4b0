package pick

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/router"
	"github.com/abhisek/coinwise/internal/screen"
	"github.com/abhisek/coinwise/internal/screens/play"
	"github.com/abhisek/coinwise/internal/store"
	"github.com/abhisek/coinwise/internal/ui/layout"
	"github.com/abhisek/coinwise/internal/ui/theme"
)

type phase int

const (
	phaseStudent phase = iota
	phaseQuiz
)

type rosterLoadedMsg struct {
	Students []*store.Student
	Err      error
}

type attemptsLoadedMsg struct {
	Open []*store.Attempt // unfinished attempts, resumable
	Err  error
}

// quizEntry is one selectable row in the quiz phase: either a fresh
// quiz or an unfinished attempt to resume.
type quizEntry struct {
	Quiz      *quiz.Quiz
	AttemptID string // non-empty for resume entries
}

// PickScreen walks the student → quiz selection before play starts.
type PickScreen struct {
	st       *store.Store
	registry *quiz.Registry

	phase    phase
	students []*store.Student
	entries  []quizEntry
	selected int
	student  *store.Student
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*PickScreen)(nil)
var _ screen.KeyHintProvider = (*PickScreen)(nil)

// New creates a new PickScreen.
func New(st *store.Store, registry *quiz.Registry) *PickScreen {
	return &PickScreen{
		st:       st,
		registry: registry,
	}
}

func (s *PickScreen) Init() tea.Cmd {
	return func() tea.Msg {
		roster, err := s.st.Students().List(context.Background())
		if err != nil {
			return rosterLoadedMsg{Err: err}
		}
		return rosterLoadedMsg{Students: roster}
	}
}

func (s *PickScreen) Title() string {
	if s.phase == phaseQuiz {
		return "Pick a Quiz"
	}
	return "Who's Playing?"
}

func (s *PickScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PickScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case rosterLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.students = msg.Students
		}
		s.loaded = true
		return s, nil

	case attemptsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.loaded = true
			return s, nil
		}
		s.entries = s.buildEntries(msg.Open)
		s.selected = 0
		s.phase = phaseQuiz
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PickScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < s.rowCount()-1 {
			s.selected++
		}
	case "enter":
		return s.choose()
	}
	return s, nil
}

func (s *PickScreen) rowCount() int {
	if s.phase == phaseQuiz {
		return len(s.entries)
	}
	return len(s.students)
}

func (s *PickScreen) choose() (screen.Screen, tea.Cmd) {
	if s.phase == phaseStudent {
		if s.selected >= len(s.students) {
			return s, nil
		}
		s.student = s.students[s.selected]
		s.loaded = false
		return s, tea.Batch(
			func() tea.Msg { return screen.ActiveStudentMsg{Name: s.student.Name} },
			s.loadAttempts(s.student.ID),
		)
	}

	if s.selected >= len(s.entries) {
		return s, nil
	}
	entry := s.entries[s.selected]
	st, registry, student := s.st, s.registry, s.student
	return s, func() tea.Msg {
		var next screen.Screen
		if entry.AttemptID != "" {
			next = play.Resume(st, registry, student, entry.AttemptID)
		} else {
			next = play.New(st, registry, student, entry.Quiz.ID)
		}
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *PickScreen) loadAttempts(studentID string) tea.Cmd {
	return func() tea.Msg {
		attempts, err := s.st.Attempts().ListByStudent(context.Background(), studentID)
		if err != nil {
			return attemptsLoadedMsg{Err: err}
		}
		var open []*store.Attempt
		for _, a := range attempts {
			if !a.Completed() {
				open = append(open, a)
			}
		}
		return attemptsLoadedMsg{Open: open}
	}
}

// buildEntries lists resumable attempts first, then every quiz.
func (s *PickScreen) buildEntries(open []*store.Attempt) []quizEntry {
	var entries []quizEntry
	for _, a := range open {
		if q, ok := s.registry.Get(a.QuizID); ok {
			entries = append(entries, quizEntry{Quiz: q, AttemptID: a.ID})
		}
	}
	for _, q := range s.registry.List() {
		entries = append(entries, quizEntry{Quiz: q})
	}
	return entries
}

func (s *PickScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading...")
	}

	if s.phase == phaseStudent {
		return s.viewStudents(width)
	}
	return s.viewQuizzes(width)
}

func (s *PickScreen) viewStudents(width int) string {
	if len(s.students) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No students yet.\n  Add one from the Students screen first.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, st := range s.students {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s  (Year %d)", prefix, st.Name, st.Grade)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *PickScreen) viewQuizzes(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	for i, entry := range s.entries {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		var line string
		if entry.AttemptID != "" {
			line = fmt.Sprintf("%sContinue: %s", prefix, entry.Quiz.Title)
		} else {
			line = fmt.Sprintf("%s%s  (Year %d)", prefix, entry.Quiz.Title, entry.Quiz.GradeLevel)
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if entry.AttemptID != "" {
			style = style.Foreground(theme.Secondary)
		}
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
