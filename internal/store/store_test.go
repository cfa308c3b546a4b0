package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/coinwise/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	require.NotNil(t, s.DB())
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		require.NoError(t, err, "PRAGMA %s", tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestStudentCRUD(t *testing.T) {
	s := openTestStore(t)
	repo := s.Students()
	ctx := context.Background()

	id, err := repo.Create(ctx, "Maya", 2)
	require.NoError(t, err)

	st, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Maya", st.Name)
	assert.Equal(t, 2, st.Grade)
	assert.Equal(t, 0, st.TotalAttempts)
	assert.Nil(t, st.LastAttemptAt)

	_, err = repo.Create(ctx, "Aarav", 1)
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Aarav", all[0].Name, "ordered by name")

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudentGet_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Students().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAttempt_BumpsStudentCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	studentID, err := s.Students().Create(ctx, "Maya", 2)
	require.NoError(t, err)

	attemptID, err := s.Attempts().CreateAttempt(ctx, studentID, "money-basics")
	require.NoError(t, err)
	require.NotEmpty(t, attemptID)

	st, err := s.Students().Get(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalAttempts, "counter bumped with attempt insert")
	assert.NotNil(t, st.LastAttemptAt)
}

func TestCreateAttempt_UnknownStudent(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Attempts().CreateAttempt(context.Background(), "ghost", "money-basics")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendAnswer_UpsertsNotDuplicates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	studentID, err := s.Students().Create(ctx, "Maya", 2)
	require.NoError(t, err)
	attemptID, err := s.Attempts().CreateAttempt(ctx, studentID, "money-basics")
	require.NoError(t, err)

	require.NoError(t, s.Attempts().AppendAnswer(ctx, attemptID, 3, quiz.NewAmountSet("coin-20c"), "submitted"))
	require.NoError(t, s.Attempts().AppendAnswer(ctx, attemptID, 3, quiz.NewAmountSet("coin-50c"), "answered"))

	_, answers, err := s.Attempts().LoadAttempt(ctx, attemptID)
	require.NoError(t, err)
	require.Len(t, answers, 1, "second append must overwrite")
	assert.Equal(t, "answered", answers[0].Status)
	assert.Equal(t, []string{"coin-50c"}, answers[0].Answer.AmountSet)
}

func TestCompleteAttempt_ClosesAttempt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	studentID, err := s.Students().Create(ctx, "Maya", 2)
	require.NoError(t, err)
	attemptID, err := s.Attempts().CreateAttempt(ctx, studentID, "money-basics")
	require.NoError(t, err)

	require.NoError(t, s.Attempts().AppendAnswer(ctx, attemptID, 1, quiz.NewOption("coin-50c"), "answered"))
	require.NoError(t, s.Attempts().CompleteAttempt(ctx, attemptID, 8, 10, 80))

	// Further appends are rejected and the stored rows stay untouched.
	err = s.Attempts().AppendAnswer(ctx, attemptID, 2, quiz.NewBool(true), "submitted")
	assert.ErrorIs(t, err, ErrAttemptClosed)

	a, answers, err := s.Attempts().LoadAttempt(ctx, attemptID)
	require.NoError(t, err)
	assert.True(t, a.Completed())
	assert.Equal(t, 8.0, a.Score)
	assert.Equal(t, 80.0, a.Percent)
	assert.Len(t, answers, 1)

	// Completing twice is also rejected.
	err = s.Attempts().CompleteAttempt(ctx, attemptID, 9, 10, 90)
	assert.ErrorIs(t, err, ErrAttemptClosed)
}

func TestLoadAttempt_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	studentID, err := s.Students().Create(ctx, "Maya", 2)
	require.NoError(t, err)
	attemptID, err := s.Attempts().CreateAttempt(ctx, studentID, "money-basics")
	require.NoError(t, err)

	saved := []struct {
		qid    int
		answer quiz.Answer
		status string
	}{
		{1, quiz.NewOption("coin-50c"), "answered"},
		{2, quiz.NewBool(true), "answered"},
		{3, quiz.NewAmountSet("coin-50c"), "answered"},
		{4, quiz.NewOrdering("coin-5c", "coin-20c", "coin-50c", "coin-2"), "answered"},
		{8, quiz.NewText("70"), "submitted"},
	}
	for _, sv := range saved {
		require.NoError(t, s.Attempts().AppendAnswer(ctx, attemptID, sv.qid, sv.answer, sv.status))
	}

	a, answers, err := s.Attempts().LoadAttempt(ctx, attemptID)
	require.NoError(t, err)
	assert.Equal(t, studentID, a.StudentID)
	assert.Equal(t, "money-basics", a.QuizID)
	require.Len(t, answers, len(saved))

	for i, sv := range saved {
		assert.Equal(t, sv.qid, answers[i].QuestionID, "answers ordered by question id")
		assert.Equal(t, sv.status, answers[i].Status)
		assert.True(t, answers[i].Answer.Equal(sv.answer), "answer %d payload", sv.qid)
	}
}

func TestLoadAttempt_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, _, err := s.Attempts().LoadAttempt(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByStudent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	studentID, err := s.Students().Create(ctx, "Maya", 2)
	require.NoError(t, err)
	for range 3 {
		_, err := s.Attempts().CreateAttempt(ctx, studentID, "money-basics")
		require.NoError(t, err)
	}

	attempts, err := s.Attempts().ListByStudent(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, attempts, 3)

	st, err := s.Students().Get(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalAttempts)
}

func TestQuizRepo_SeedAndLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	reg, err := quiz.LoadBuiltins()
	require.NoError(t, err)
	q, ok := reg.Get("money-basics")
	require.True(t, ok)

	payload := []byte(`{"id":"money-basics"}`)
	require.NoError(t, s.Quizzes().Seed(ctx, q, payload))
	// Seeding twice upserts.
	require.NoError(t, s.Quizzes().Seed(ctx, q, payload))

	got, err := s.Quizzes().Load(ctx, "money-basics")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = s.Quizzes().Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorageErrorUnwraps(t *testing.T) {
	inner := errors.New("disk full")
	err := storageErr("append answer", inner)

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "append answer", se.Op)
	assert.ErrorIs(t, err, inner)
}
