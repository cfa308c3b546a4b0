package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type studentRepo struct {
	db *sql.DB
}

func (r *studentRepo) Create(ctx context.Context, name string, grade int) (string, error) {
	if name == "" {
		return "", fmt.Errorf("student name must not be empty")
	}
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO students (id, name, grade, total_attempts, created_at)
		 VALUES (?, ?, ?, 0, ?)`,
		id, name, grade, time.Now().Unix())
	if err != nil {
		return "", storageErr("create student", err)
	}
	return id, nil
}

func (r *studentRepo) Get(ctx context.Context, id string) (*Student, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, grade, total_attempts, last_attempt_at, created_at
		 FROM students WHERE id = ?`, id)
	return scanStudent(row)
}

func (r *studentRepo) List(ctx context.Context) ([]*Student, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, grade, total_attempts, last_attempt_at, created_at
		 FROM students ORDER BY name`)
	if err != nil {
		return nil, storageErr("list students", err)
	}
	defer rows.Close()

	var out []*Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list students", err)
	}
	return out, nil
}

func (r *studentRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("delete student", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM answers WHERE attempt_id IN (SELECT id FROM attempts WHERE student_id = ?)`, id); err != nil {
		return storageErr("delete student answers", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM attempts WHERE student_id = ?`, id); err != nil {
		return storageErr("delete student attempts", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete student", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete student", err)
	}
	if n == 0 {
		return fmt.Errorf("student %s: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("delete student", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (*Student, error) {
	var s Student
	var lastAttempt sql.NullInt64
	var createdAt int64
	err := row.Scan(&s.ID, &s.Name, &s.Grade, &s.TotalAttempts, &lastAttempt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storageErr("scan student", err)
	}
	s.CreatedAt = time.Unix(createdAt, 0)
	if lastAttempt.Valid {
		t := time.Unix(lastAttempt.Int64, 0)
		s.LastAttemptAt = &t
	}
	return &s, nil
}
