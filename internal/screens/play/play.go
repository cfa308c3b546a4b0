package play

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/router"
	"github.com/abhisek/coinwise/internal/screen"
	"github.com/abhisek/coinwise/internal/screens/summary"
	"github.com/abhisek/coinwise/internal/store"
	"github.com/abhisek/coinwise/internal/tracker"
	"github.com/abhisek/coinwise/internal/ui/components"
	"github.com/abhisek/coinwise/internal/ui/layout"
)

// inputKind tells the screen which widget is live for the current
// question.
type inputKind int

const (
	inputPicker inputKind = iota
	inputOrder
	inputChoice
	inputText
)

// PlayScreen runs one quiz attempt: it walks the questions, collects
// answers through the archetype widgets and drives the attempt
// coordinator.
type PlayScreen struct {
	st       *store.Store
	registry *quiz.Registry
	student  *store.Student
	quizID   string
	resumeID string

	coord *tracker.Coordinator
	index int // 0-based position in the question list

	active inputKind
	picker components.CoinPicker
	order  components.OrderList
	choice components.MultiChoice
	input  components.TextInput

	showingFeedback bool
	feedback        quiz.Result
	showingFinish   bool
	showingQuit     bool
	confirm         components.Confirm
	saveNotice      bool // last write failed, memory still good
	ready           bool
	errMsg          string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.EscHandler = (*PlayScreen)(nil)

// New creates a PlayScreen that starts a fresh attempt.
func New(st *store.Store, registry *quiz.Registry, student *store.Student, quizID string) *PlayScreen {
	return &PlayScreen{
		st:       st,
		registry: registry,
		student:  student,
		quizID:   quizID,
		coord:    tracker.NewCoordinator(st.Attempts(), registry),
	}
}

// Resume creates a PlayScreen that continues an unfinished attempt.
func Resume(st *store.Store, registry *quiz.Registry, student *store.Student, attemptID string) *PlayScreen {
	return &PlayScreen{
		st:       st,
		registry: registry,
		student:  student,
		resumeID: attemptID,
		coord:    tracker.NewCoordinator(st.Attempts(), registry),
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if s.resumeID != "" {
			err = s.coord.Resume(ctx, s.resumeID)
		} else {
			err = s.coord.Begin(ctx, s.student.ID, s.quizID)
		}
		return attemptReadyMsg{Err: err}
	}
}

func (s *PlayScreen) Title() string {
	if s.ready {
		return s.coord.Tracker().Quiz().Title
	}
	return "Quiz"
}

func (s *PlayScreen) HandlesEsc() bool {
	return true
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.showingQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Save & leave"},
			{Key: "N", Description: "Keep playing"},
			{Key: "←/→", Description: "Choose"},
		}
	case s.showingFinish:
		return []layout.KeyHint{
			{Key: "Y", Description: "Finish quiz"},
			{Key: "N", Description: "Go back"},
			{Key: "←/→", Description: "Choose"},
		}
	case s.showingFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Tab", Description: "Next"},
			{Key: "Ctrl+S", Description: "Skip"},
			{Key: "Ctrl+D", Description: "Finish"},
			{Key: "Esc", Description: "Leave"},
		}
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptReadyMsg:
		return s.handleReady(msg)

	case attemptDoneMsg:
		return s.handleDone(msg)

	case attemptLeftMsg:
		return s, tea.Batch(
			func() tea.Msg { return screen.ActiveStudentMsg{} },
			func() tea.Msg { return router.PopScreenMsg{} },
		)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward non-key messages (cursor blink) to the text input.
	if s.ready && s.active == inputText && !s.showingFeedback {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *PlayScreen) handleReady(msg attemptReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.ready = true
	s.index = s.firstOpenIndex()
	return s, s.setupQuestion()
}

func (s *PlayScreen) handleDone(msg attemptDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	student, t, sum := s.student, s.coord.Tracker(), msg.Summary
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(student, t, sum)}
	}
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, tea.Batch(
			func() tea.Msg { return screen.ActiveStudentMsg{} },
			func() tea.Msg { return router.PopScreenMsg{} },
		)
	}

	if !s.ready {
		return s, nil
	}

	if s.showingQuit || s.showingFinish {
		var cmd tea.Cmd
		s.confirm, cmd = s.confirm.Update(msg)
		return s, cmd
	}

	// Feedback overlay: any key dismisses and moves on.
	if s.showingFeedback {
		s.showingFeedback = false
		return s.advance()
	}

	switch key {
	case "esc":
		s.showingQuit = true
		s.confirm = components.NewConfirm("Yes, leave for now", "No, keep playing",
			func() tea.Cmd {
				s.showingQuit = false
				s.stashAnswer()
				return func() tea.Msg {
					_ = s.coord.Abandon(context.Background())
					return attemptLeftMsg{}
				}
			},
			func() tea.Cmd {
				s.showingQuit = false
				return nil
			})
		return s, nil
	case "enter":
		// The order list uses enter to grab and drop pieces; there
		// submission happens through ctrl+enter instead.
		if s.active != inputOrder {
			return s.submit()
		}
	case "ctrl+enter":
		return s.submit()
	case "tab":
		s.stashAnswer()
		s.index = (s.index + 1) % s.questionCount()
		return s, s.setupQuestion()
	case "shift+tab":
		s.stashAnswer()
		s.index = (s.index + s.questionCount() - 1) % s.questionCount()
		return s, s.setupQuestion()
	case "ctrl+s":
		return s.skip()
	case "ctrl+d":
		s.openFinishConfirm()
		return s, nil
	}

	// Forward everything else to the active widget.
	var cmd tea.Cmd
	switch s.active {
	case inputPicker:
		s.picker, cmd = s.picker.Update(msg)
	case inputOrder:
		s.order, cmd = s.order.Update(msg)
	case inputChoice:
		s.choice, cmd = s.choice.Update(msg)
	case inputText:
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

// submit grades the current answer and shows feedback.
func (s *PlayScreen) submit() (screen.Screen, tea.Cmd) {
	q := s.question()
	a, ok := s.currentAnswer()
	if !ok {
		return s, nil
	}

	_, err := s.coord.Submit(context.Background(), q.ID, &a)
	s.saveNotice = err != nil

	if state, ok := s.coord.Tracker().State(q.ID); ok && state.Result != nil {
		s.feedback = *state.Result
		s.showingFeedback = true
	}
	return s, nil
}

// skip marks the question skipped unless it already has a committed
// answer, then moves on.
func (s *PlayScreen) skip() (screen.Screen, tea.Cmd) {
	q := s.question()
	outcome, err := s.coord.Skip(context.Background(), q.ID)
	s.saveNotice = err != nil
	if outcome == tracker.OutcomeRejected {
		// Already submitted; a skip would throw the answer away.
		return s, nil
	}
	s.index = (s.index + 1) % s.questionCount()
	return s, s.setupQuestion()
}

// finish flushes, finalizes and scores the attempt.
func (s *PlayScreen) finish() tea.Cmd {
	s.stashAnswer()
	return func() tea.Msg {
		sum, err := s.coord.Complete(context.Background())
		return attemptDoneMsg{Summary: sum, Err: err}
	}
}

// advance steps to the next question that still needs attention, or
// asks to finish when there is none.
func (s *PlayScreen) advance() (screen.Screen, tea.Cmd) {
	n := s.questionCount()
	for step := 1; step <= n; step++ {
		i := (s.index + step) % n
		q := s.coord.Tracker().Quiz().Questions[i]
		if state, ok := s.coord.Tracker().State(q.ID); ok {
			if state.Status == tracker.StatusPending || state.Status == tracker.StatusSkipped {
				s.index = i
				return s, s.setupQuestion()
			}
		}
	}
	s.openFinishConfirm()
	return s, nil
}

// openFinishConfirm shows the finish dialog over the current question.
func (s *PlayScreen) openFinishConfirm() {
	s.showingFinish = true
	s.confirm = components.NewConfirm("Yes, show my score", "No, keep going",
		func() tea.Cmd {
			s.showingFinish = false
			return s.finish()
		},
		func() tea.Cmd {
			s.showingFinish = false
			return nil
		})
}

// setupQuestion rebuilds the input widget for the current question,
// restoring any answer already on the tracker.
func (s *PlayScreen) setupQuestion() tea.Cmd {
	q := s.question()
	state, _ := s.coord.Tracker().State(q.ID)

	switch q.Archetype {
	case quiz.ArchetypeComposition:
		s.active = inputPicker
		s.picker = components.NewCoinPicker(q.Allowed, q.MaxItems)
		if state.Answer != nil && state.Answer.Kind == quiz.AnswerAmountSet {
			s.picker.SetPicked(state.Answer.AmountSet)
		}
		return nil

	case quiz.ArchetypeOrdering:
		s.active = inputOrder
		s.order = components.NewOrderList(q.ItemPool)
		if state.Answer != nil && state.Answer.Kind == quiz.AnswerOrdering {
			s.order.SetOrder(state.Answer.Ordering)
		}
		return nil

	case quiz.ArchetypeBoolean:
		s.active = inputChoice
		s.choice = components.NewMultiChoice([]quiz.Option{
			{ID: "true", Label: "True"},
			{ID: "false", Label: "False"},
		})
		if state.Answer != nil && state.Answer.Kind == quiz.AnswerBool && !state.Answer.Bool {
			s.choice.Select("false")
		}
		return nil

	case quiz.ArchetypeChoice:
		s.active = inputChoice
		s.choice = components.NewMultiChoice(q.Options)
		if state.Answer != nil && state.Answer.Kind == quiz.AnswerOption {
			s.choice.Select(state.Answer.Option)
		}
		return nil

	default: // numeric
		s.active = inputText
		s.input = components.NewTextInput("Type the amount, like $2.50", true, 12)
		if state.Answer != nil && state.Answer.Kind == quiz.AnswerText {
			s.input.SetValue(state.Answer.Text)
		}
		return s.input.Init()
	}
}

// currentAnswer reads the live widget into an answer value.
func (s *PlayScreen) currentAnswer() (quiz.Answer, bool) {
	switch s.active {
	case inputPicker:
		if len(s.picker.Picked) == 0 {
			return quiz.Answer{}, false
		}
		return quiz.NewAmountSet(s.picker.Picked...), true
	case inputOrder:
		return quiz.NewOrdering(s.order.Order()...), true
	case inputChoice:
		id := s.choice.Choice()
		if q := s.question(); q.Archetype == quiz.ArchetypeBoolean {
			return quiz.NewBool(id == "true"), true
		}
		return quiz.NewOption(id), true
	default:
		if s.input.Value() == "" {
			return quiz.Answer{}, false
		}
		return quiz.NewText(s.input.Value()), true
	}
}

// stashAnswer keeps unfinished input on the tracker so navigation and
// teardown don't lose it.
func (s *PlayScreen) stashAnswer() {
	if !s.ready {
		return
	}
	if a, ok := s.currentAnswer(); ok {
		_, _ = s.coord.SetAnswer(s.question().ID, a)
	}
}

func (s *PlayScreen) question() quiz.Question {
	return s.coord.Tracker().Quiz().Questions[s.index]
}

func (s *PlayScreen) questionCount() int {
	return len(s.coord.Tracker().Quiz().Questions)
}

// firstOpenIndex returns the first question that is still pending or
// skipped, so resumed attempts land where the student left off.
func (s *PlayScreen) firstOpenIndex() int {
	t := s.coord.Tracker()
	for i, q := range t.Quiz().Questions {
		if state, ok := t.State(q.ID); ok {
			if state.Status == tracker.StatusPending || state.Status == tracker.StatusSkipped {
				return i
			}
		}
	}
	return 0
}
