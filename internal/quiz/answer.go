package quiz

import "slices"

// AnswerKind tags the payload variant carried by an Answer.
type AnswerKind string

const (
	AnswerAmountSet AnswerKind = "amount-set"
	AnswerOrdering  AnswerKind = "ordering"
	AnswerBool      AnswerKind = "bool"
	AnswerOption    AnswerKind = "option"
	AnswerText      AnswerKind = "text"
)

// Answer is a student's raw response to one question. Exactly one
// payload field is meaningful, selected by Kind, so validators can
// switch on the variant instead of casting dynamic values.
type Answer struct {
	Kind      AnswerKind `json:"kind"`
	AmountSet []string   `json:"amount_set,omitempty"` // denomination IDs, duplicates allowed
	Ordering  []string   `json:"ordering,omitempty"`   // denomination IDs in submitted order
	Bool      bool       `json:"bool,omitempty"`
	Option    string     `json:"option,omitempty"`
	Text      string     `json:"text,omitempty"`
}

// NewAmountSet builds a composition answer from selected denomination IDs.
func NewAmountSet(ids ...string) Answer {
	return Answer{Kind: AnswerAmountSet, AmountSet: ids}
}

// NewOrdering builds an ordering answer from an arranged sequence.
func NewOrdering(ids ...string) Answer {
	return Answer{Kind: AnswerOrdering, Ordering: ids}
}

// NewBool builds a true/false answer.
func NewBool(v bool) Answer {
	return Answer{Kind: AnswerBool, Bool: v}
}

// NewOption builds a multiple choice answer from the chosen option ID.
func NewOption(id string) Answer {
	return Answer{Kind: AnswerOption, Option: id}
}

// NewText builds a free-text answer.
func NewText(s string) Answer {
	return Answer{Kind: AnswerText, Text: s}
}

// Equal reports whether two answers carry the same kind and payload.
func (a Answer) Equal(b Answer) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case AnswerAmountSet:
		return slices.Equal(a.AmountSet, b.AmountSet)
	case AnswerOrdering:
		return slices.Equal(a.Ordering, b.Ordering)
	case AnswerBool:
		return a.Bool == b.Bool
	case AnswerOption:
		return a.Option == b.Option
	case AnswerText:
		return a.Text == b.Text
	}
	return false
}
