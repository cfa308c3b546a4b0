package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/coinwise/internal/quiz"
)

type quizRepo struct {
	db *sql.DB
}

func (r *quizRepo) Seed(ctx context.Context, q *quiz.Quiz, payload []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO quiz_definitions (id, title, grade_level, format_version, payload, seeded_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   title = excluded.title,
		   grade_level = excluded.grade_level,
		   format_version = excluded.format_version,
		   payload = excluded.payload,
		   seeded_at = excluded.seeded_at`,
		q.ID, q.Title, q.GradeLevel, q.FormatVersion, string(payload), time.Now().Unix())
	if err != nil {
		return storageErr("seed quiz definition", err)
	}
	return nil
}

func (r *quizRepo) Load(ctx context.Context, id string) ([]byte, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM quiz_definitions WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quiz %s: %w", id, ErrNotFound)
		}
		return nil, storageErr("load quiz definition", err)
	}
	return []byte(payload), nil
}
