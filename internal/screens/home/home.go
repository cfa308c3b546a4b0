package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/router"
	"github.com/abhisek/coinwise/internal/screen"
	"github.com/abhisek/coinwise/internal/screens/pick"
	"github.com/abhisek/coinwise/internal/screens/students"
	"github.com/abhisek/coinwise/internal/store"
	"github.com/abhisek/coinwise/internal/ui/components"
	"github.com/abhisek/coinwise/internal/ui/theme"
)

// rosterCountMsg carries the counts shown on the home banner.
type rosterCountMsg struct {
	Students int
	Err      error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	st         *store.Store
	registry   *quiz.Registry
	menu       components.Menu
	students   int
	quizzes    int
	countsSeen bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(st *store.Store, registry *quiz.Registry) *HomeScreen {
	h := &HomeScreen{
		st:       st,
		registry: registry,
		quizzes:  len(registry.List()),
	}

	items := []components.MenuItem{
		{Label: "PLAY QUIZ", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: pick.New(st, registry)}
			}
		}},
		{Label: "STUDENTS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: students.New(st, registry)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return func() tea.Msg {
		roster, err := h.st.Students().List(context.Background())
		if err != nil {
			return rosterCountMsg{Err: err}
		}
		return rosterCountMsg{Students: len(roster)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if cmsg, ok := msg.(rosterCountMsg); ok {
		if cmsg.Err == nil {
			h.students = cmsg.Students
		}
		h.countsSeen = true
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string

	title := theme.Title.Render("C O I N W I S E") + "\n" +
		theme.Subtitle.Render("Learn to count money!")
	sections = append(sections, components.Card(title, cw))

	if h.countsSeen {
		stats := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			plural(h.students, "student") + "  ·  " + plural(h.quizzes, "quiz"))
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).Align(lipgloss.Center).Render(stats))
	}

	sections = append(sections, components.Card(h.menu.View(), cw))

	content := strings.Join(sections, "\n\n")
	return components.CenterFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if noun == "quiz" {
		noun = "quizze"
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
