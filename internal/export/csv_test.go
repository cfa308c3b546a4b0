package export

import (
	"context"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/store"
	"github.com/abhisek/coinwise/internal/tracker"
)

func TestWriteQuiz(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	reg, err := quiz.LoadBuiltins()
	if err != nil {
		t.Fatalf("load builtins: %v", err)
	}

	studentID, err := s.Students().Create(ctx, "Maya", 2)
	if err != nil {
		t.Fatalf("create student: %v", err)
	}

	c := tracker.NewCoordinator(s.Attempts(), reg)
	if err := c.Begin(ctx, studentID, "money-basics"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	right := quiz.NewAmountSet("coin-50c")
	c.Submit(ctx, 3, &right)
	wrong := quiz.NewBool(false)
	c.Submit(ctx, 2, &wrong)
	c.Skip(ctx, 1)
	if _, err := c.Complete(ctx); err != nil {
		t.Fatalf("complete: %v", err)
	}

	student, err := s.Students().Get(ctx, studentID)
	if err != nil {
		t.Fatalf("get student: %v", err)
	}

	var buf strings.Builder
	ex := New(s.Attempts(), reg)
	if err := ex.WriteQuiz(ctx, &buf, "money-basics", []*store.Student{student}); err != nil {
		t.Fatalf("WriteQuiz: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want header + 1 attempt", len(rows))
	}

	header := rows[0]
	if header[0] != "studentId" || header[1] != "timestamp" {
		t.Errorf("header = %v", header[:2])
	}
	if len(header) != 13 { // studentId, timestamp, q1..q10, score
		t.Errorf("len(header) = %d, want 13", len(header))
	}

	row := rows[1]
	if row[0] != studentID {
		t.Errorf("studentId = %q", row[0])
	}
	if row[2] != "skip" {
		t.Errorf("q1 = %q, want skip", row[2])
	}
	if row[3] != "0" {
		t.Errorf("q2 = %q, want 0 (wrong answer)", row[3])
	}
	if row[4] != "1" {
		t.Errorf("q3 = %q, want 1 (correct answer)", row[4])
	}
	if row[5] != "-" {
		t.Errorf("q4 = %q, want - (never reached)", row[5])
	}
	if row[12] != "1" {
		t.Errorf("score = %q, want 1", row[12])
	}
}

func TestWriteQuiz_UnknownQuiz(t *testing.T) {
	reg, err := quiz.LoadBuiltins()
	if err != nil {
		t.Fatalf("load builtins: %v", err)
	}
	ex := New(nil, reg)

	var buf strings.Builder
	if err := ex.WriteQuiz(context.Background(), &buf, "calculus", nil); err == nil {
		t.Fatal("expected error for unknown quiz")
	}
}
