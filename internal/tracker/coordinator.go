package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/store"
)

// ErrAttemptActive is returned by Begin while another attempt is in
// flight. The caller must Complete or Abandon first; starting over
// never silently discards in-progress work.
var ErrAttemptActive = errors.New("an attempt is already active")

// ErrNoAttempt is returned by operations that need an active attempt.
var ErrNoAttempt = errors.New("no active attempt")

// Coordinator owns the lifetime of one attempt: it creates the tracker,
// forwards UI events to it, and persists each mutation best-effort.
// Memory is authoritative: a failed write is reported to the caller
// but never rolls the tracker back.
type Coordinator struct {
	attempts store.AttemptRepo
	registry *quiz.Registry

	tracker   *Tracker
	attemptID string
	studentID string
}

// NewCoordinator creates a coordinator with no active attempt.
func NewCoordinator(attempts store.AttemptRepo, registry *quiz.Registry) *Coordinator {
	return &Coordinator{attempts: attempts, registry: registry}
}

// Active reports whether an attempt is in flight.
func (c *Coordinator) Active() bool {
	return c.tracker != nil
}

// Tracker exposes the live tracker for rendering. Nil when inactive.
func (c *Coordinator) Tracker() *Tracker {
	return c.tracker
}

// AttemptID returns the active attempt's ID, or "".
func (c *Coordinator) AttemptID() string {
	return c.attemptID
}

// Begin creates a durable attempt record and a fresh tracker. A second
// Begin while one attempt is active fails with ErrAttemptActive.
func (c *Coordinator) Begin(ctx context.Context, studentID, quizID string) error {
	if c.tracker != nil {
		return ErrAttemptActive
	}
	q, ok := c.registry.Get(quizID)
	if !ok {
		return fmt.Errorf("unknown quiz %q", quizID)
	}

	attemptID, err := c.attempts.CreateAttempt(ctx, studentID, quizID)
	if err != nil {
		return fmt.Errorf("begin attempt: %w", err)
	}

	c.tracker = New(q)
	c.attemptID = attemptID
	c.studentID = studentID
	return nil
}

// Resume reloads a persisted attempt into a fresh tracker. Every
// loaded answer is re-validated; stored correctness is never trusted.
func (c *Coordinator) Resume(ctx context.Context, attemptID string) error {
	if c.tracker != nil {
		return ErrAttemptActive
	}

	attempt, answers, err := c.attempts.LoadAttempt(ctx, attemptID)
	if err != nil {
		return fmt.Errorf("resume attempt: %w", err)
	}
	if attempt.Completed() {
		return fmt.Errorf("resume attempt: %w", store.ErrAttemptClosed)
	}
	q, ok := c.registry.Get(attempt.QuizID)
	if !ok {
		return fmt.Errorf("attempt %s references unknown quiz %q", attemptID, attempt.QuizID)
	}

	t := New(q)
	for _, sa := range answers {
		// A zero Kind is how skips without a stashed answer persist;
		// restoring it as a real answer would grade the empty value.
		var a *quiz.Answer
		if sa.Answer.Kind != "" {
			v := sa.Answer
			a = &v
		}
		at := sa.RecordedAt
		t.Restore(sa.QuestionID, a, Status(sa.Status), &at)
	}

	c.tracker = t
	c.attemptID = attemptID
	c.studentID = attempt.StudentID
	return nil
}

// SetAnswer stores the raw answer in memory only. Unsaved input is
// flushed on skip/submit or teardown, so no write happens here.
func (c *Coordinator) SetAnswer(questionID int, a quiz.Answer) (Outcome, error) {
	if c.tracker == nil {
		return OutcomeRejected, ErrNoAttempt
	}
	return c.tracker.SetAnswer(questionID, a), nil
}

// Skip marks the question skipped and persists the skip.
func (c *Coordinator) Skip(ctx context.Context, questionID int) (Outcome, error) {
	if c.tracker == nil {
		return OutcomeRejected, ErrNoAttempt
	}
	out := c.tracker.Skip(questionID)
	if out != OutcomeOK {
		return out, nil
	}
	return out, c.persist(ctx, questionID)
}

// Submit commits and validates an answer, then persists it.
func (c *Coordinator) Submit(ctx context.Context, questionID int, a *quiz.Answer) (Outcome, error) {
	if c.tracker == nil {
		return OutcomeRejected, ErrNoAttempt
	}
	out := c.tracker.Submit(questionID, a)
	if out != OutcomeOK {
		return out, nil
	}
	return out, c.persist(ctx, questionID)
}

// Complete finalizes the attempt: flushes remaining state, writes the
// score, freezes the tracker and releases it.
func (c *Coordinator) Complete(ctx context.Context) (ScoreSummary, error) {
	if c.tracker == nil {
		return ScoreSummary{}, ErrNoAttempt
	}

	flushErr := c.flush(ctx)
	score := c.tracker.Score()
	if err := c.attempts.CompleteAttempt(ctx, c.attemptID, score.Score, score.Max, score.Percent); err != nil {
		return score, fmt.Errorf("complete attempt: %w", err)
	}
	c.tracker.Complete()
	c.release()
	return score, flushErr
}

// Abandon ends the attempt without completing it. Partial state is
// flushed best-effort before the in-memory tracker is dropped; this is
// the teardown path for quitting mid-quiz.
func (c *Coordinator) Abandon(ctx context.Context) error {
	if c.tracker == nil {
		return nil
	}
	err := c.flush(ctx)
	c.release()
	return err
}

// flush persists every non-pending question state. Used on completion
// and teardown to catch anything an earlier failed write left behind.
func (c *Coordinator) flush(ctx context.Context) error {
	var firstErr error
	for _, qn := range c.tracker.Quiz().Questions {
		st, ok := c.tracker.State(qn.ID)
		if !ok || st.Status == StatusPending {
			continue
		}
		if err := c.persist(ctx, qn.ID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// persist writes one question's current state through the gateway.
func (c *Coordinator) persist(ctx context.Context, questionID int) error {
	st, ok := c.tracker.State(questionID)
	if !ok {
		return nil
	}
	var a quiz.Answer
	if st.Answer != nil {
		a = *st.Answer
	}
	if err := c.attempts.AppendAnswer(ctx, c.attemptID, questionID, a, string(st.Status)); err != nil {
		return fmt.Errorf("save question %d: %w", questionID, err)
	}
	return nil
}

func (c *Coordinator) release() {
	c.tracker = nil
	c.attemptID = ""
	c.studentID = ""
}
