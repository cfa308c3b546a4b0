package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/router"
	"github.com/abhisek/coinwise/internal/screen"
	"github.com/abhisek/coinwise/internal/screens/home"
	"github.com/abhisek/coinwise/internal/screens/play"
	"github.com/abhisek/coinwise/internal/store"
	"github.com/abhisek/coinwise/internal/ui/layout"
)

// Options carries the dependencies the TUI needs. When StartStudent
// and StartQuiz are both set, the app jumps straight into that quiz
// instead of the home menu.
type Options struct {
	Store        *store.Store
	Registry     *quiz.Registry
	StartStudent *store.Student
	StartQuiz    string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	opts    Options
	width   int
	height  int
	student string
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Store, opts.Registry)
	return AppModel{
		router: router.New(homeScreen),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	cmd := active.Init()

	if m.opts.StartStudent != nil && m.opts.StartQuiz != "" {
		student, quizID := m.opts.StartStudent, m.opts.StartQuiz
		st, registry := m.opts.Store, m.opts.Registry
		cmd = tea.Batch(cmd,
			func() tea.Msg { return screen.ActiveStudentMsg{Name: student.Name} },
			func() tea.Msg {
				return router.PushScreenMsg{Screen: play.New(st, registry, student, quizID)}
			},
		)
	}
	return cmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.ActiveStudentMsg:
		m.student = msg.Name
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.student, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
