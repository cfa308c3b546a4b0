package tracker

import (
	"time"

	"github.com/abhisek/coinwise/internal/quiz"
)

// Status is a question's position in its lifecycle. Stored as text, so
// the values double as the persisted representation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSkipped   Status = "skipped"
	StatusSubmitted Status = "submitted"
	StatusAnswered  Status = "answered" // submitted and validated correct
)

// Outcome reports what a tracker operation did. Operations never panic
// or return errors for bad input; callers branch on the outcome.
type Outcome int

const (
	// OutcomeOK means the operation applied.
	OutcomeOK Outcome = iota
	// OutcomeNoAnswer means submit was called with nothing to submit.
	// State is unchanged.
	OutcomeNoAnswer
	// OutcomeUnknownQuestion means the question ID is outside the quiz.
	// State is unchanged.
	OutcomeUnknownQuestion
	// OutcomeRejected means the transition is not allowed from the
	// current status (skip after submit, any mutation after completion).
	OutcomeRejected
)

// QuestionState is the per-question record inside one attempt.
//
// Lifecycle: pending → skipped or submitted/answered. A skipped
// question may still be submitted later; a submitted question may be
// re-submitted (overwriting answer, timestamp and result) any time
// before the attempt completes, but may not go back to skipped: a
// skip would silently discard a committed answer.
type QuestionState struct {
	Status      Status
	Answer      *quiz.Answer
	SubmittedAt *time.Time
	SkippedAt   *time.Time
	Result      *quiz.Result
}

// Tracker is the in-memory state machine for one attempt at one quiz.
// It is owned by whoever orchestrates the session and passed by
// reference; it holds no global state and touches no storage.
type Tracker struct {
	quiz      *quiz.Quiz
	states    map[int]*QuestionState
	completed bool

	// now is swappable for tests.
	now func() time.Time
}

// New creates a tracker with every question pending.
func New(q *quiz.Quiz) *Tracker {
	states := make(map[int]*QuestionState, len(q.Questions))
	for _, qn := range q.Questions {
		states[qn.ID] = &QuestionState{Status: StatusPending}
	}
	return &Tracker{
		quiz:   q,
		states: states,
		now:    time.Now,
	}
}

// Quiz returns the fixed question set this tracker runs over.
func (t *Tracker) Quiz() *quiz.Quiz {
	return t.quiz
}

// State returns a copy of the question's current state.
func (t *Tracker) State(questionID int) (QuestionState, bool) {
	st, ok := t.states[questionID]
	if !ok {
		return QuestionState{}, false
	}
	return *st, true
}

// SetAnswer stores the raw answer without changing status or validating.
// The UI calls this on every answer-changed event so a later Submit
// without an explicit value uses the latest input.
func (t *Tracker) SetAnswer(questionID int, a quiz.Answer) Outcome {
	if t.completed {
		return OutcomeRejected
	}
	st, ok := t.states[questionID]
	if !ok {
		return OutcomeUnknownQuestion
	}
	st.Answer = &a
	return OutcomeOK
}

// Skip marks a question skipped. Allowed from pending (and re-skip is a
// harmless no-op transition from skipped); rejected once an answer has
// been submitted.
func (t *Tracker) Skip(questionID int) Outcome {
	if t.completed {
		return OutcomeRejected
	}
	st, ok := t.states[questionID]
	if !ok {
		return OutcomeUnknownQuestion
	}
	if st.Status == StatusSubmitted || st.Status == StatusAnswered {
		return OutcomeRejected
	}
	now := t.now()
	st.Status = StatusSkipped
	st.SkippedAt = &now
	return OutcomeOK
}

// Submit commits an answer: the provided one, or the last stored answer
// when a is nil. With nothing to submit it reports OutcomeNoAnswer and
// leaves the state untouched. On success it stores the answer, stamps
// SubmittedAt, validates, and moves to submitted (answered when
// correct). Re-submission before completion overwrites everything.
func (t *Tracker) Submit(questionID int, a *quiz.Answer) Outcome {
	if t.completed {
		return OutcomeRejected
	}
	st, ok := t.states[questionID]
	if !ok {
		return OutcomeUnknownQuestion
	}
	if a == nil {
		a = st.Answer
	}
	if a == nil {
		return OutcomeNoAnswer
	}

	question, ok := t.quiz.QuestionByID(questionID)
	if !ok {
		return OutcomeUnknownQuestion
	}

	res := quiz.Validate(question, *a)
	now := t.now()
	st.Answer = a
	st.SubmittedAt = &now
	st.Result = &res
	if res.Correct {
		st.Status = StatusAnswered
	} else {
		st.Status = StatusSubmitted
	}
	return OutcomeOK
}

// Restore repopulates one question from a persisted record,
// re-validating the answer instead of trusting any stored correctness.
// Used when resuming an attempt from the store.
func (t *Tracker) Restore(questionID int, a *quiz.Answer, status Status, at *time.Time) Outcome {
	st, ok := t.states[questionID]
	if !ok {
		return OutcomeUnknownQuestion
	}

	switch status {
	case StatusSkipped:
		st.Status = StatusSkipped
		st.SkippedAt = at
		st.Answer = a
	case StatusSubmitted, StatusAnswered:
		if a == nil {
			return OutcomeNoAnswer
		}
		question, ok := t.quiz.QuestionByID(questionID)
		if !ok {
			return OutcomeUnknownQuestion
		}
		res := quiz.Validate(question, *a)
		st.Answer = a
		st.SubmittedAt = at
		st.Result = &res
		if res.Correct {
			st.Status = StatusAnswered
		} else {
			st.Status = StatusSubmitted
		}
	case StatusPending:
		st.Status = StatusPending
		st.Answer = a
	default:
		return OutcomeRejected
	}
	return OutcomeOK
}

// Complete freezes the tracker; every later mutation is rejected.
func (t *Tracker) Complete() {
	t.completed = true
}

// Completed reports whether the attempt has been frozen.
func (t *Tracker) Completed() bool {
	return t.completed
}
