package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/coinwise/internal/quiz"
)

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) CreateAttempt(ctx context.Context, studentID, quizID string) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", storageErr("create attempt", err)
	}
	defer tx.Rollback()

	// The attempt insert and the roster counter bump are one
	// transactional effect: the count must never be observable without
	// the attempt row, or the other way round.
	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM students WHERE id = ?`, studentID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("student %s: %w", studentID, ErrNotFound)
		}
		return "", storageErr("create attempt", err)
	}

	id := uuid.NewString()
	now := time.Now().Unix()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO attempts (id, student_id, quiz_id, started_at) VALUES (?, ?, ?, ?)`,
		id, studentID, quizID, now)
	if err != nil {
		return "", storageErr("create attempt", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE students SET total_attempts = total_attempts + 1, last_attempt_at = ? WHERE id = ?`,
		now, studentID)
	if err != nil {
		return "", storageErr("update student attempt count", err)
	}

	if err := tx.Commit(); err != nil {
		return "", storageErr("create attempt", err)
	}
	return id, nil
}

func (r *attemptRepo) AppendAnswer(ctx context.Context, attemptID string, questionID int, a quiz.Answer, status string) error {
	completed, err := r.attemptCompleted(ctx, attemptID)
	if err != nil {
		return err
	}
	if completed {
		return fmt.Errorf("append answer to %s: %w", attemptID, ErrAttemptClosed)
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return storageErr("marshal answer", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answers (attempt_id, question_id, payload, status, recorded_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (attempt_id, question_id) DO UPDATE SET
		   payload = excluded.payload,
		   status = excluded.status,
		   recorded_at = excluded.recorded_at`,
		attemptID, questionID, string(payload), status, time.Now().Unix())
	if err != nil {
		return storageErr("append answer", err)
	}
	return nil
}

func (r *attemptRepo) CompleteAttempt(ctx context.Context, attemptID string, score, maxScore, percent float64) error {
	completed, err := r.attemptCompleted(ctx, attemptID)
	if err != nil {
		return err
	}
	if completed {
		return fmt.Errorf("complete %s: %w", attemptID, ErrAttemptClosed)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE attempts SET score = ?, max_score = ?, percent = ?, completed_at = ? WHERE id = ?`,
		score, maxScore, percent, time.Now().Unix(), attemptID)
	if err != nil {
		return storageErr("complete attempt", err)
	}
	return nil
}

func (r *attemptRepo) LoadAttempt(ctx context.Context, attemptID string) (*Attempt, []StoredAnswer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, student_id, quiz_id, score, max_score, percent, started_at, completed_at
		 FROM attempts WHERE id = ?`, attemptID)
	a, err := scanAttempt(row)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT question_id, payload, status, recorded_at
		 FROM answers WHERE attempt_id = ? ORDER BY question_id`, attemptID)
	if err != nil {
		return nil, nil, storageErr("load answers", err)
	}
	defer rows.Close()

	var answers []StoredAnswer
	for rows.Next() {
		var sa StoredAnswer
		var payload string
		var recordedAt int64
		if err := rows.Scan(&sa.QuestionID, &payload, &sa.Status, &recordedAt); err != nil {
			return nil, nil, storageErr("scan answer", err)
		}
		if err := json.Unmarshal([]byte(payload), &sa.Answer); err != nil {
			return nil, nil, storageErr("decode answer payload", err)
		}
		sa.RecordedAt = time.Unix(recordedAt, 0)
		answers = append(answers, sa)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, storageErr("load answers", err)
	}
	return a, answers, nil
}

func (r *attemptRepo) ListByStudent(ctx context.Context, studentID string) ([]*Attempt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, student_id, quiz_id, score, max_score, percent, started_at, completed_at
		 FROM attempts WHERE student_id = ? ORDER BY started_at DESC`, studentID)
	if err != nil {
		return nil, storageErr("list attempts", err)
	}
	defer rows.Close()

	var out []*Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list attempts", err)
	}
	return out, nil
}

func (r *attemptRepo) attemptCompleted(ctx context.Context, attemptID string) (bool, error) {
	var completedAt sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT completed_at FROM attempts WHERE id = ?`, attemptID).Scan(&completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("attempt %s: %w", attemptID, ErrNotFound)
		}
		return false, storageErr("check attempt", err)
	}
	return completedAt.Valid, nil
}

func scanAttempt(row scanner) (*Attempt, error) {
	var a Attempt
	var startedAt int64
	var completedAt sql.NullInt64
	err := row.Scan(&a.ID, &a.StudentID, &a.QuizID, &a.Score, &a.MaxScore, &a.Percent, &startedAt, &completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storageErr("scan attempt", err)
	}
	a.StartedAt = time.Unix(startedAt, 0)
	if completedAt.Valid {
		t := time.Unix(completedAt.Int64, 0)
		a.CompletedAt = &t
	}
	return &a, nil
}
