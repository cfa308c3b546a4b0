package students

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/router"
	"github.com/abhisek/coinwise/internal/screen"
	"github.com/abhisek/coinwise/internal/screens/history"
	"github.com/abhisek/coinwise/internal/store"
	"github.com/abhisek/coinwise/internal/ui/components"
	"github.com/abhisek/coinwise/internal/ui/layout"
	"github.com/abhisek/coinwise/internal/ui/theme"
)

type mode int

const (
	modeList mode = iota
	modeAddName
	modeAddGrade
	modeConfirmDelete
)

type rosterLoadedMsg struct {
	Students []*store.Student
	Err      error
}

type rosterChangedMsg struct {
	Err error
}

// StudentsScreen manages the roster: list, add and remove students,
// and open a student's attempt history.
type StudentsScreen struct {
	st       *store.Store
	registry *quiz.Registry

	mode     mode
	students []*store.Student
	selected int
	input    components.TextInput
	newName  string
	newGrade int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*StudentsScreen)(nil)
var _ screen.KeyHintProvider = (*StudentsScreen)(nil)
var _ screen.EscHandler = (*StudentsScreen)(nil)

// New creates a new StudentsScreen.
func New(st *store.Store, registry *quiz.Registry) *StudentsScreen {
	return &StudentsScreen{
		st:       st,
		registry: registry,
	}
}

func (s *StudentsScreen) Init() tea.Cmd {
	return s.loadRoster()
}

func (s *StudentsScreen) loadRoster() tea.Cmd {
	return func() tea.Msg {
		roster, err := s.st.Students().List(context.Background())
		if err != nil {
			return rosterLoadedMsg{Err: err}
		}
		return rosterLoadedMsg{Students: roster}
	}
}

func (s *StudentsScreen) Title() string {
	return "Students"
}

func (s *StudentsScreen) HandlesEsc() bool {
	// Esc cancels add/delete modes in place of leaving the screen.
	return s.mode != modeList
}

func (s *StudentsScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeAddName:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeAddGrade:
		return []layout.KeyHint{
			{Key: "1-6", Description: "School year"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmDelete:
		return []layout.KeyHint{
			{Key: "Y", Description: "Remove"},
			{Key: "N", Description: "Keep"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "History"},
			{Key: "A", Description: "Add"},
			{Key: "D", Description: "Remove"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *StudentsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case rosterLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.students = msg.Students
			if s.selected >= len(s.students) {
				s.selected = 0
			}
		}
		s.loaded = true
		return s, nil

	case rosterChangedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.loadRoster()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == modeAddName {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudentsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.mode {
	case modeAddName:
		switch key {
		case "esc":
			s.mode = modeList
			return s, nil
		case "enter":
			name := strings.TrimSpace(s.input.Value())
			if name == "" {
				return s, nil
			}
			s.newName = name
			s.mode = modeAddGrade
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case modeAddGrade:
		switch key {
		case "esc":
			s.mode = modeList
			return s, nil
		case "1", "2", "3", "4", "5", "6":
			s.newGrade = int(key[0] - '0')
			s.mode = modeList
			name, grade := s.newName, s.newGrade
			return s, func() tea.Msg {
				_, err := s.st.Students().Create(context.Background(), name, grade)
				return rosterChangedMsg{Err: err}
			}
		}
		return s, nil

	case modeConfirmDelete:
		switch key {
		case "y", "Y":
			s.mode = modeList
			if s.selected < len(s.students) {
				id := s.students[s.selected].ID
				return s, func() tea.Msg {
					err := s.st.Students().Delete(context.Background(), id)
					return rosterChangedMsg{Err: err}
				}
			}
		case "n", "N", "esc":
			s.mode = modeList
		}
		return s, nil
	}

	// List mode.
	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.students)-1 {
			s.selected++
		}
	case "a", "A":
		s.input = components.NewTextInput("Student name", false, 24)
		s.mode = modeAddName
		return s, s.input.Init()
	case "d", "D":
		if len(s.students) > 0 {
			s.mode = modeConfirmDelete
		}
	case "enter":
		if s.selected < len(s.students) {
			student := s.students[s.selected]
			st, registry := s.st, s.registry
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(st, registry, student)}
			}
		}
	}
	return s, nil
}

func (s *StudentsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading roster...")
	}

	switch s.mode {
	case modeAddName:
		prompt := "What's the student's name?\n\n" + s.input.View()
		return components.CenterFrame(components.Card(prompt, components.ContentWidth(width)), width, height)

	case modeAddGrade:
		prompt := fmt.Sprintf("Which school year is %s in?\n\nPress 1-6", s.newName)
		return components.CenterFrame(components.Card(prompt, components.ContentWidth(width)), width, height)

	case modeConfirmDelete:
		name := ""
		if s.selected < len(s.students) {
			name = s.students[s.selected].Name
		}
		prompt := fmt.Sprintf("Remove %s?\n\nAll of their quiz history goes too.\n\n[Y] Yes   [N] No", name)
		return components.CenterFrame(components.Card(prompt, components.ContentWidth(width)), width, height)
	}

	if len(s.students) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No students yet. Press A to add one.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, st := range s.students {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		last := "never played"
		if st.LastAttemptAt != nil {
			last = "last played " + st.LastAttemptAt.Format("Jan 02")
		}
		line := fmt.Sprintf("%s%-16s Year %d   %d attempt(s)   %s",
			prefix, st.Name, st.Grade, st.TotalAttempts, last)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
