package store

import (
	"context"
	"time"

	"github.com/abhisek/coinwise/internal/quiz"
)

// Student is one learner in the roster. TotalAttempts and
// LastAttemptAt are maintained by CreateAttempt in the same
// transaction that inserts the attempt row.
type Student struct {
	ID            string
	Name          string
	Grade         int
	TotalAttempts int
	LastAttemptAt *time.Time
	CreatedAt     time.Time
}

// Attempt is one student's pass through a quiz.
type Attempt struct {
	ID          string
	StudentID   string
	QuizID      string
	Score       float64
	MaxScore    float64
	Percent     float64
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Completed reports whether the attempt has been finalized.
func (a *Attempt) Completed() bool {
	return a.CompletedAt != nil
}

// StoredAnswer is one persisted answer row. Correctness is never
// stored as ground truth; callers re-validate on load.
type StoredAnswer struct {
	QuestionID int
	Answer     quiz.Answer
	Status     string
	RecordedAt time.Time
}

// StudentRepo is the roster.
type StudentRepo interface {
	// Create registers a student and returns the generated ID.
	Create(ctx context.Context, name string, grade int) (string, error)

	// Get returns a student, or ErrNotFound.
	Get(ctx context.Context, id string) (*Student, error)

	// List returns all students ordered by name.
	List(ctx context.Context) ([]*Student, error)

	// Delete removes a student and their attempts and answers.
	Delete(ctx context.Context, id string) error
}

// AttemptRepo is the persistence gateway for attempts and answers.
type AttemptRepo interface {
	// CreateAttempt inserts an attempt and, in the same transaction,
	// bumps the student's attempt counter and last-attempt timestamp.
	// Both effects commit together or not at all.
	CreateAttempt(ctx context.Context, studentID, quizID string) (string, error)

	// AppendAnswer upserts the answer for (attemptID, questionID):
	// a second call with the same question overwrites, never duplicates.
	// Fails with ErrAttemptClosed once the attempt is completed.
	AppendAnswer(ctx context.Context, attemptID string, questionID int, a quiz.Answer, status string) error

	// CompleteAttempt finalizes the attempt with its score. Afterwards
	// the attempt is immutable.
	CompleteAttempt(ctx context.Context, attemptID string, score, maxScore, percent float64) error

	// LoadAttempt returns the attempt and its answers ordered by
	// question ID, or ErrNotFound.
	LoadAttempt(ctx context.Context, attemptID string) (*Attempt, []StoredAnswer, error)

	// ListByStudent returns a student's attempts, newest first.
	ListByStudent(ctx context.Context, studentID string) ([]*Attempt, error)
}

// QuizRepo stores quiz definition blobs so exports and reloads read
// from the same source the attempt was taken against.
type QuizRepo interface {
	// Seed upserts a quiz definition.
	Seed(ctx context.Context, q *quiz.Quiz, payload []byte) error

	// Load returns the stored definition payload, or ErrNotFound.
	Load(ctx context.Context, id string) ([]byte, error)
}
