package store

import (
	"database/sql"
	"fmt"
)

// migrate creates the four tables. DDL is idempotent; the schema is
// small enough that versioned migrations would be ceremony.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			grade           INTEGER NOT NULL,
			total_attempts  INTEGER NOT NULL DEFAULT 0,
			last_attempt_at INTEGER,
			created_at      INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id           TEXT PRIMARY KEY,
			student_id   TEXT NOT NULL REFERENCES students(id),
			quiz_id      TEXT NOT NULL,
			score        REAL NOT NULL DEFAULT 0,
			max_score    REAL NOT NULL DEFAULT 0,
			percent      REAL NOT NULL DEFAULT 0,
			started_at   INTEGER NOT NULL,
			completed_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_student ON attempts(student_id)`,
		`CREATE TABLE IF NOT EXISTS answers (
			attempt_id  TEXT NOT NULL REFERENCES attempts(id),
			question_id INTEGER NOT NULL,
			payload     TEXT NOT NULL,
			status      TEXT NOT NULL,
			recorded_at INTEGER NOT NULL,
			PRIMARY KEY (attempt_id, question_id)
		)`,
		`CREATE TABLE IF NOT EXISTS quiz_definitions (
			id             TEXT PRIMARY KEY,
			title          TEXT NOT NULL,
			grade_level    INTEGER NOT NULL,
			format_version TEXT NOT NULL,
			payload        TEXT NOT NULL,
			seeded_at      INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %.30q: %w", stmt, err)
		}
	}
	return nil
}
