package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/coinwise/internal/currency"
)

// AmountEpsilon absorbs floating-point error when summing denomination
// values against a composition target.
const AmountEpsilon = 0.01

// DefaultTolerance is the comparison tolerance for numeric questions
// that don't set their own.
const DefaultTolerance = 0.01

// Result is the outcome of validating one answer. Score is 0..1.
// Validation never fails with an error: malformed input produces an
// incorrect Result with feedback the UI can always render.
type Result struct {
	Correct  bool
	Score    float64
	Feedback string
}

// checker validates one archetype.
type checker interface {
	check(q Question, a Answer) Result
}

// checkers routes by archetype. An archetype without a checker grades
// as incorrect rather than erroring, so callers never branch on absence.
var checkers = map[Archetype]checker{
	ArchetypeComposition: compositionChecker{},
	ArchetypeOrdering:    orderingChecker{},
	ArchetypeBoolean:     booleanChecker{},
	ArchetypeChoice:      choiceChecker{},
	ArchetypeNumeric:     numericChecker{},
}

// Validate grades an answer against its question. Pure and
// deterministic: the same inputs always produce the same Result.
func Validate(q Question, a Answer) Result {
	ck, ok := checkers[q.Archetype]
	if !ok {
		return Result{Feedback: "This question can't be checked."}
	}
	return ck.check(q, a)
}

func kindMismatch(want AnswerKind) Result {
	return Result{Feedback: fmt.Sprintf("Expected a %s answer.", want)}
}

type compositionChecker struct{}

func (compositionChecker) check(q Question, a Answer) Result {
	if a.Kind != AnswerAmountSet {
		return kindMismatch(AnswerAmountSet)
	}
	if len(a.AmountSet) == 0 {
		return Result{Feedback: "Pick some money first."}
	}
	if q.MaxItems > 0 && len(a.AmountSet) > q.MaxItems {
		return Result{Feedback: fmt.Sprintf("Too many items — use at most %d coins or notes.", q.MaxItems)}
	}

	sum, unknown := currency.Sum(a.AmountSet)
	if unknown > 0 {
		return Result{Feedback: "Some of that money isn't real — try again."}
	}

	diff := sum - q.TargetAmount
	switch {
	case diff > AmountEpsilon:
		return Result{Feedback: fmt.Sprintf("That's %s — too much, remove some items.", FormatAmount(sum))}
	case diff < -AmountEpsilon:
		return Result{Feedback: fmt.Sprintf("That's %s — too little, add some items.", FormatAmount(sum))}
	}
	return Result{Correct: true, Score: 1, Feedback: fmt.Sprintf("Spot on — that makes %s!", FormatAmount(q.TargetAmount))}
}

type orderingChecker struct{}

// Ordering grades all-or-nothing: the first adjacent pair out of order
// fails the whole sequence. No partial credit by position.
func (orderingChecker) check(q Question, a Answer) Result {
	if a.Kind != AnswerOrdering {
		return kindMismatch(AnswerOrdering)
	}
	if len(a.Ordering) != len(q.ItemPool) {
		return Result{Feedback: fmt.Sprintf("Use all %d items.", len(q.ItemPool))}
	}

	values := make([]float64, len(a.Ordering))
	for i, id := range a.Ordering {
		d, ok := currency.ByID(id)
		if !ok {
			return Result{Feedback: "Some of that money isn't real — try again."}
		}
		values[i] = d.Value
	}

	for i := 1; i < len(values); i++ {
		inOrder := values[i] > values[i-1]
		if q.Direction == SortDescending {
			inOrder = values[i] < values[i-1]
		}
		if !inOrder {
			return Result{Feedback: fmt.Sprintf("Items %d and %d are in the wrong order.", i, i+1)}
		}
	}
	return Result{Correct: true, Score: 1, Feedback: "Perfect order!"}
}

type booleanChecker struct{}

func (booleanChecker) check(q Question, a Answer) Result {
	if a.Kind != AnswerBool {
		return kindMismatch(AnswerBool)
	}
	if a.Bool != q.ExpectedBool {
		return Result{Feedback: "Not quite — think about it again."}
	}
	return Result{Correct: true, Score: 1, Feedback: "Correct!"}
}

type choiceChecker struct{}

func (choiceChecker) check(q Question, a Answer) Result {
	if a.Kind != AnswerOption {
		return kindMismatch(AnswerOption)
	}
	if a.Option != q.CorrectOption {
		return Result{Feedback: "Not quite — have another look at the options."}
	}
	return Result{Correct: true, Score: 1, Feedback: "Correct!"}
}

type numericChecker struct{}

func (numericChecker) check(q Question, a Answer) Result {
	if a.Kind != AnswerText {
		return kindMismatch(AnswerText)
	}

	v, err := ParseAmount(a.Text)
	if err != nil {
		return Result{Feedback: fmt.Sprintf("%q isn't a number — type an amount like 4.50.", strings.TrimSpace(a.Text))}
	}

	tol := q.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	diff := v - q.ExpectedValue
	if diff < -tol || diff > tol {
		return Result{Feedback: fmt.Sprintf("%s isn't right — work it out again.", FormatAmount(v))}
	}
	return Result{Correct: true, Score: 1, Feedback: "Correct!"}
}

// ParseAmount parses a typed money amount. Currency symbols, commas and
// surrounding whitespace are stripped before parsing, so "$14.00",
// "14" and " 14,00 0" fail or succeed purely on the remaining digits.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return v, nil
}

// FormatAmount renders a dollar value the way it's read to students:
// whole cents under a dollar ("50c"), dollars otherwise ("$1.20").
func FormatAmount(v float64) string {
	cents := int(v*100 + 0.5)
	if cents < 100 {
		return fmt.Sprintf("%dc", cents)
	}
	if cents%100 == 0 {
		return fmt.Sprintf("$%d", cents/100)
	}
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
