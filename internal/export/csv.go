// Package export writes attempt results as CSV for teachers to pull
// into a spreadsheet. One file covers one quiz, so the per-question
// columns line up across rows.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/store"
	"github.com/abhisek/coinwise/internal/tracker"
)

// Exporter reads attempts through the persistence gateway and
// re-validates answers while writing; stored scores are not trusted.
type Exporter struct {
	attempts store.AttemptRepo
	registry *quiz.Registry
}

// New creates an Exporter.
func New(attempts store.AttemptRepo, registry *quiz.Registry) *Exporter {
	return &Exporter{attempts: attempts, registry: registry}
}

// WriteQuiz emits one row per completed attempt of the given quiz by
// the given students: studentId, timestamp, q1..qN, score. Cells hold
// the validated per-question score; "skip" marks skipped questions and
// "-" questions never reached.
func (e *Exporter) WriteQuiz(ctx context.Context, w io.Writer, quizID string, students []*store.Student) error {
	q, ok := e.registry.Get(quizID)
	if !ok {
		return fmt.Errorf("unknown quiz %q", quizID)
	}

	cw := csv.NewWriter(w)
	header := []string{"studentId", "timestamp"}
	for _, qn := range q.Questions {
		header = append(header, fmt.Sprintf("q%d", qn.ID))
	}
	header = append(header, "score")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, st := range students {
		attempts, err := e.attempts.ListByStudent(ctx, st.ID)
		if err != nil {
			return fmt.Errorf("list attempts for %s: %w", st.ID, err)
		}
		for _, a := range attempts {
			if a.QuizID != quizID || !a.Completed() {
				continue
			}
			row, err := e.attemptRow(ctx, q, st, a)
			if err != nil {
				return err
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func (e *Exporter) attemptRow(ctx context.Context, q *quiz.Quiz, st *store.Student, a *store.Attempt) ([]string, error) {
	_, answers, err := e.attempts.LoadAttempt(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("load attempt %s: %w", a.ID, err)
	}

	byQuestion := make(map[int]store.StoredAnswer, len(answers))
	for _, sa := range answers {
		byQuestion[sa.QuestionID] = sa
	}

	row := []string{st.ID, a.CompletedAt.UTC().Format(time.RFC3339)}
	var total float64
	for _, qn := range q.Questions {
		sa, ok := byQuestion[qn.ID]
		switch {
		case !ok:
			row = append(row, "-")
		case sa.Status == string(tracker.StatusSkipped):
			row = append(row, "skip")
		default:
			res := quiz.Validate(qn, sa.Answer)
			total += res.Score
			row = append(row, formatScore(res.Score))
		}
	}
	row = append(row, formatScore(total))
	return row, nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
