package quiz

import (
	"strings"
	"testing"
)

func compositionQuestion(target float64, maxItems int) Question {
	return Question{
		ID:           1,
		Archetype:    ArchetypeComposition,
		Prompt:       "Make the amount.",
		TargetAmount: target,
		MaxItems:     maxItems,
	}
}

func TestValidate_Composition_ExactAmount(t *testing.T) {
	q := compositionQuestion(0.50, 4)

	res := Validate(q, NewAmountSet("coin-50c"))

	if !res.Correct {
		t.Errorf("Correct = false, want true (feedback: %s)", res.Feedback)
	}
	if res.Score != 1 {
		t.Errorf("Score = %f, want 1", res.Score)
	}
}

func TestValidate_Composition_OverTarget(t *testing.T) {
	q := compositionQuestion(1.00, 5)

	res := Validate(q, NewAmountSet("coin-50c", "coin-50c", "coin-20c"))

	if res.Correct {
		t.Error("Correct = true, want false for $1.20 against $1.00")
	}
	if !strings.Contains(strings.ToLower(res.Feedback), "too much") {
		t.Errorf("Feedback = %q, want mention of 'too much'", res.Feedback)
	}
}

func TestValidate_Composition_UnderTarget(t *testing.T) {
	q := compositionQuestion(1.00, 5)

	res := Validate(q, NewAmountSet("coin-20c", "coin-20c"))

	if res.Correct {
		t.Error("Correct = true, want false for 40c against $1.00")
	}
	if !strings.Contains(strings.ToLower(res.Feedback), "too little") {
		t.Errorf("Feedback = %q, want mention of 'too little'", res.Feedback)
	}
}

func TestValidate_Composition_TooManyItems(t *testing.T) {
	q := compositionQuestion(0.50, 2)

	res := Validate(q, NewAmountSet("coin-10c", "coin-10c", "coin-10c", "coin-10c", "coin-10c"))

	if res.Correct {
		t.Error("Correct = true, want false when item limit exceeded")
	}
	if !strings.Contains(strings.ToLower(res.Feedback), "too many") {
		t.Errorf("Feedback = %q, want the distinct 'too many items' message", res.Feedback)
	}
}

func TestValidate_Composition_EpsilonAbsorbsFloatError(t *testing.T) {
	// 0.1 + 0.2 does not sum to exactly 0.3 in float64.
	q := compositionQuestion(0.30, 0)

	res := Validate(q, NewAmountSet("coin-10c", "coin-20c"))

	if !res.Correct {
		t.Errorf("Correct = false, want true within epsilon (feedback: %s)", res.Feedback)
	}
}

func TestValidate_Composition_UnknownDenomination(t *testing.T) {
	q := compositionQuestion(0.50, 0)

	res := Validate(q, NewAmountSet("coin-25c"))

	if res.Correct {
		t.Error("Correct = true, want false for unknown denomination")
	}
}

func TestValidate_Idempotent(t *testing.T) {
	q := compositionQuestion(1.20, 5)
	a := NewAmountSet("coin-50c", "coin-50c", "coin-20c")

	first := Validate(q, a)
	second := Validate(q, a)

	if first != second {
		t.Errorf("repeated validation differs: %+v vs %+v", first, second)
	}
	if !first.Correct {
		t.Errorf("Correct = false, want true (feedback: %s)", first.Feedback)
	}
}

func TestValidate_Ordering_Ascending(t *testing.T) {
	q := Question{
		ID:        2,
		Archetype: ArchetypeOrdering,
		ItemPool:  []string{"coin-5c", "coin-20c", "coin-50c", "coin-2"},
		Direction: SortAscending,
	}

	res := Validate(q, NewOrdering("coin-5c", "coin-20c", "coin-50c", "coin-2"))
	if !res.Correct {
		t.Errorf("sorted sequence rejected: %s", res.Feedback)
	}

	// A single adjacent inversion invalidates the whole sequence.
	res = Validate(q, NewOrdering("coin-5c", "coin-50c", "coin-20c", "coin-2"))
	if res.Correct {
		t.Error("inverted sequence accepted")
	}
	if res.Score != 0 {
		t.Errorf("Score = %f, want 0 (no partial credit for ordering)", res.Score)
	}
}

func TestValidate_Ordering_Descending(t *testing.T) {
	q := Question{
		ID:        2,
		Archetype: ArchetypeOrdering,
		ItemPool:  []string{"note-50", "note-20", "note-5"},
		Direction: SortDescending,
	}

	res := Validate(q, NewOrdering("note-50", "note-20", "note-5"))
	if !res.Correct {
		t.Errorf("descending sequence rejected: %s", res.Feedback)
	}

	res = Validate(q, NewOrdering("note-5", "note-20", "note-50"))
	if res.Correct {
		t.Error("ascending sequence accepted for descending question")
	}
}

func TestValidate_Ordering_IncompleteSequence(t *testing.T) {
	q := Question{
		ID:        2,
		Archetype: ArchetypeOrdering,
		ItemPool:  []string{"coin-5c", "coin-20c", "coin-50c"},
		Direction: SortAscending,
	}

	res := Validate(q, NewOrdering("coin-5c", "coin-20c"))
	if res.Correct {
		t.Error("sequence missing an item accepted")
	}
}

func TestValidate_Boolean(t *testing.T) {
	q := Question{ID: 3, Archetype: ArchetypeBoolean, ExpectedBool: true}

	if res := Validate(q, NewBool(true)); !res.Correct {
		t.Errorf("true rejected: %s", res.Feedback)
	}
	if res := Validate(q, NewBool(false)); res.Correct {
		t.Error("false accepted")
	}
}

func TestValidate_Choice(t *testing.T) {
	q := Question{
		ID:        4,
		Archetype: ArchetypeChoice,
		Options: []Option{
			{ID: "a", Label: "5"},
			{ID: "b", Label: "10"},
		},
		CorrectOption: "b",
	}

	if res := Validate(q, NewOption("b")); !res.Correct {
		t.Errorf("correct option rejected: %s", res.Feedback)
	}
	if res := Validate(q, NewOption("a")); res.Correct {
		t.Error("wrong option accepted")
	}
}

func TestValidate_Numeric(t *testing.T) {
	q := Question{ID: 5, Archetype: ArchetypeNumeric, ExpectedValue: 14.00}

	tests := []struct {
		input   string
		correct bool
	}{
		{"$14.00", true},
		{"14", true},
		{"14.005", true}, // within default tolerance
		{"13.50", false},
		{"fourteen", false},
	}
	for _, tt := range tests {
		res := Validate(q, NewText(tt.input))
		if res.Correct != tt.correct {
			t.Errorf("Validate(%q).Correct = %v, want %v (feedback: %s)", tt.input, res.Correct, tt.correct, res.Feedback)
		}
	}

	res := Validate(q, NewText("fourteen"))
	if !strings.Contains(res.Feedback, "isn't a number") {
		t.Errorf("non-numeric feedback = %q, want invalid-number message", res.Feedback)
	}
}

func TestValidate_UnknownArchetype(t *testing.T) {
	q := Question{ID: 6, Archetype: "essay"}

	res := Validate(q, NewText("anything"))

	if res.Correct {
		t.Error("unknown archetype graded correct")
	}
	if res.Feedback == "" {
		t.Error("unknown archetype must still produce renderable feedback")
	}
}

func TestValidate_KindMismatch(t *testing.T) {
	q := compositionQuestion(0.50, 0)

	res := Validate(q, NewBool(true))

	if res.Correct {
		t.Error("mismatched answer kind graded correct")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"$14.00", 14.00, false},
		{"14", 14, false},
		{"1,250.50", 1250.50, false},
		{"  $3.5 ", 3.5, false},
		{"fourteen", 0, true},
		{"", 0, true},
		{"$", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAmount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseAmount(%q) = %f, want %f", tt.input, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.50, "50c"},
		{0.05, "5c"},
		{1.00, "$1"},
		{1.20, "$1.20"},
		{16.00, "$16"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%f) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
