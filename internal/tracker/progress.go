package tracker

// Progress is the status breakdown of the fixed question set.
type Progress struct {
	Pending   int
	Skipped   int
	Submitted int
	Answered  int
	Total     int
	// Percent is completion over the question set: questions with a
	// committed answer count; skips leave pending but don't complete.
	Percent float64
}

// ScoreSummary aggregates validated scores over the attempt.
type ScoreSummary struct {
	Score   float64
	Max     float64
	Percent float64
}

// Progress returns current counts per status plus completion percent.
// Percent is monotonically non-decreasing within an attempt: questions
// only leave submitted/answered by re-submission, which keeps them there.
func (t *Tracker) Progress() Progress {
	p := Progress{Total: len(t.quiz.Questions)}
	for _, st := range t.states {
		switch st.Status {
		case StatusPending:
			p.Pending++
		case StatusSkipped:
			p.Skipped++
		case StatusSubmitted:
			p.Submitted++
		case StatusAnswered:
			p.Answered++
		}
	}
	if p.Total > 0 {
		p.Percent = float64(p.Submitted+p.Answered) / float64(p.Total) * 100
	}
	return p
}

// Score sums each question's validated score (0 when unvalidated) as a
// fraction of the quiz maximum. The sum can never exceed the maximum:
// every per-question score is at most 1 and each question counts once.
func (t *Tracker) Score() ScoreSummary {
	s := ScoreSummary{Max: t.quiz.MaxScore()}
	for _, st := range t.states {
		if st.Result != nil {
			s.Score += st.Result.Score
		}
	}
	if s.Score > s.Max {
		s.Score = s.Max
	}
	if s.Max > 0 {
		s.Percent = s.Score / s.Max * 100
	}
	return s
}
