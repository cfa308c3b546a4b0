package play

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/router"
	"github.com/abhisek/coinwise/internal/screen"
	"github.com/abhisek/coinwise/internal/store"
	"github.com/abhisek/coinwise/internal/tracker"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testDeps(t *testing.T) (*store.Store, *quiz.Registry, *store.Student) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	reg, err := quiz.LoadBuiltins()
	if err != nil {
		t.Fatalf("load builtins: %v", err)
	}

	id, err := st.Students().Create(context.Background(), "Maya", 1)
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	student, err := st.Students().Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get student: %v", err)
	}
	return st, reg, student
}

// testPlayScreen starts a fresh attempt at money-basics and delivers
// the ready message.
func testPlayScreen(t *testing.T) *PlayScreen {
	t.Helper()
	st, reg, student := testDeps(t)

	s := New(st, reg, student, "money-basics")
	msg := s.Init()()
	scr, _ := s.Update(msg)
	ps := scr.(*PlayScreen)
	if !ps.ready {
		t.Fatalf("screen not ready after init: %s", ps.errMsg)
	}
	return ps
}

func TestPlayScreen_Ready(t *testing.T) {
	s := testPlayScreen(t)

	if s.Title() != "Money Basics" {
		t.Errorf("Title = %q, want %q", s.Title(), "Money Basics")
	}
	if s.index != 0 {
		t.Errorf("index = %d, want 0", s.index)
	}
	// Question 1 of money-basics is multiple choice.
	if s.active != inputChoice {
		t.Errorf("active widget = %d, want choice", s.active)
	}
}

func TestPlayScreen_View_Loading(t *testing.T) {
	st, reg, student := testDeps(t)
	s := New(st, reg, student, "money-basics")
	if s.View(80, 24) == "" {
		t.Error("expected non-empty loading view")
	}
}

func TestPlayScreen_SubmitCorrectChoice(t *testing.T) {
	s := testPlayScreen(t)
	q := s.question()
	s.choice.Select(q.CorrectOption)

	scr, _ := s.Update(specialKey(tea.KeyEnter))
	ps := scr.(*PlayScreen)

	if !ps.showingFeedback {
		t.Fatal("expected feedback after submit")
	}
	if !ps.feedback.Correct {
		t.Errorf("feedback.Correct = false, want true: %s", ps.feedback.Feedback)
	}

	// The answer must have been persisted.
	_, answers, err := ps.st.Attempts().LoadAttempt(context.Background(), ps.coord.AttemptID())
	if err != nil {
		t.Fatalf("load attempt: %v", err)
	}
	if len(answers) != 1 {
		t.Errorf("persisted answers = %d, want 1", len(answers))
	}
}

func TestPlayScreen_FeedbackDismissAdvances(t *testing.T) {
	s := testPlayScreen(t)
	s.choice.Select(s.question().CorrectOption)

	scr, _ := s.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(keyPress(' '))
	ps := scr.(*PlayScreen)

	if ps.showingFeedback {
		t.Error("feedback still showing after dismiss")
	}
	if ps.index != 1 {
		t.Errorf("index = %d, want 1 after advance", ps.index)
	}
}

func TestPlayScreen_SkipAdvances(t *testing.T) {
	s := testPlayScreen(t)

	scr, _ := s.Update(ctrlKey('s'))
	ps := scr.(*PlayScreen)

	if ps.index != 1 {
		t.Errorf("index = %d, want 1 after skip", ps.index)
	}
	state, _ := ps.coord.Tracker().State(1)
	if state.Status != tracker.StatusSkipped {
		t.Errorf("question 1 status = %q, want skipped", state.Status)
	}
}

func TestPlayScreen_TabNavigatesWithoutStateChange(t *testing.T) {
	s := testPlayScreen(t)

	scr, _ := s.Update(specialKey(tea.KeyTab))
	ps := scr.(*PlayScreen)

	if ps.index != 1 {
		t.Errorf("index = %d, want 1 after tab", ps.index)
	}
	state, _ := ps.coord.Tracker().State(1)
	if state.Status != tracker.StatusPending {
		t.Errorf("question 1 status = %q, want pending", state.Status)
	}

	scr, _ = ps.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	ps = scr.(*PlayScreen)
	if ps.index != 0 {
		t.Errorf("index = %d, want 0 after shift+tab", ps.index)
	}
}

func TestPlayScreen_QuitConfirm(t *testing.T) {
	s := testPlayScreen(t)

	scr, _ := s.Update(specialKey(tea.KeyEscape))
	ps := scr.(*PlayScreen)
	if !ps.showingQuit {
		t.Fatal("expected quit confirmation after esc")
	}

	scr, _ = ps.Update(keyPress('n'))
	ps = scr.(*PlayScreen)
	if ps.showingQuit {
		t.Error("expected quit confirmation to be dismissed")
	}
}

func TestPlayScreen_QuitConfirmEnterOnFocusedYes(t *testing.T) {
	s := testPlayScreen(t)

	scr, _ := s.Update(specialKey(tea.KeyEscape))
	ps := scr.(*PlayScreen)

	// Focus starts on "keep playing"; move it to the yes button.
	scr, _ = ps.Update(specialKey(tea.KeyLeft))
	scr, cmd := scr.(*PlayScreen).Update(specialKey(tea.KeyEnter))
	ps = scr.(*PlayScreen)

	if ps.showingQuit {
		t.Error("expected quit confirmation to close")
	}
	if cmd == nil {
		t.Fatal("expected a command after confirming leave")
	}
	if _, ok := cmd().(attemptLeftMsg); !ok {
		t.Errorf("expected attemptLeftMsg, got %T", cmd())
	}
}

func TestPlayScreen_ViewShowsProgressBar(t *testing.T) {
	s := testPlayScreen(t)

	v := s.View(80, 24)
	if !strings.Contains(v, "0/10") {
		t.Errorf("question view missing progress counter:\n%s", v)
	}

	s.choice.Select(s.question().CorrectOption)
	scr, _ := s.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(keyPress(' '))
	if v := scr.View(80, 24); !strings.Contains(v, "1/10") {
		t.Errorf("progress counter not advanced:\n%s", v)
	}
}

func TestPlayScreen_ConfirmButtonsRendered(t *testing.T) {
	s := testPlayScreen(t)

	scr, _ := s.Update(specialKey(tea.KeyEscape))
	if v := scr.View(80, 24); !strings.Contains(v, "Yes, leave for now") {
		t.Errorf("quit overlay missing yes button:\n%s", v)
	}

	scr, _ = scr.Update(keyPress('n'))
	scr, _ = scr.Update(ctrlKey('d'))
	if v := scr.View(80, 24); !strings.Contains(v, "No, keep going") {
		t.Errorf("finish overlay missing no button:\n%s", v)
	}
}

func TestPlayScreen_FinishProducesSummary(t *testing.T) {
	s := testPlayScreen(t)

	scr, _ := s.Update(ctrlKey('d'))
	ps := scr.(*PlayScreen)
	if !ps.showingFinish {
		t.Fatal("expected finish confirmation after ctrl+d")
	}

	scr, cmd := ps.Update(keyPress('y'))
	ps = scr.(*PlayScreen)
	if cmd == nil {
		t.Fatal("expected a command after finish confirmation")
	}

	done, ok := cmd().(attemptDoneMsg)
	if !ok {
		t.Fatalf("expected attemptDoneMsg, got %T", cmd())
	}
	if done.Err != nil {
		t.Fatalf("finish: %v", done.Err)
	}

	_, cmd = ps.Update(done)
	if cmd == nil {
		t.Fatal("expected navigation command after completion")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg, got %T", cmd())
	}
}

func TestPlayScreen_ResumeLandsOnFirstOpenQuestion(t *testing.T) {
	st, reg, student := testDeps(t)
	ctx := context.Background()

	// Answer question 1 through a coordinator, then walk away.
	c := tracker.NewCoordinator(st.Attempts(), reg)
	if err := c.Begin(ctx, student.ID, "money-basics"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	q, _ := reg.Get("money-basics")
	a := quiz.NewOption(q.Questions[0].CorrectOption)
	if _, err := c.Submit(ctx, 1, &a); err != nil {
		t.Fatalf("submit: %v", err)
	}
	attemptID := c.AttemptID()
	if err := c.Abandon(ctx); err != nil {
		t.Fatalf("abandon: %v", err)
	}

	s := Resume(st, reg, student, attemptID)
	msg := s.Init()()
	scr, _ := s.Update(msg)
	ps := scr.(*PlayScreen)

	if !ps.ready {
		t.Fatalf("screen not ready: %s", ps.errMsg)
	}
	if ps.index != 1 {
		t.Errorf("index = %d, want 1 (first open question)", ps.index)
	}
	state, _ := ps.coord.Tracker().State(1)
	if state.Status != tracker.StatusAnswered {
		t.Errorf("restored question 1 status = %q, want answered", state.Status)
	}
}

func TestPlayScreen_HandlesEsc(t *testing.T) {
	s := testPlayScreen(t)
	var h screen.EscHandler = s
	if !h.HandlesEsc() {
		t.Error("play screen must intercept esc")
	}
}

func TestPlayScreen_KeyHints(t *testing.T) {
	s := testPlayScreen(t)
	if len(s.KeyHints()) == 0 {
		t.Error("expected non-empty key hints")
	}
}
