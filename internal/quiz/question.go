package quiz

// Archetype is the structural category of a question. It determines
// which answer payload is expected and which validation rule applies.
type Archetype string

const (
	// ArchetypeComposition asks the student to assemble a target amount
	// from coins and notes.
	ArchetypeComposition Archetype = "composition"
	// ArchetypeOrdering asks the student to arrange denominations by value.
	ArchetypeOrdering Archetype = "ordering"
	// ArchetypeBoolean is a true/false statement about money.
	ArchetypeBoolean Archetype = "boolean"
	// ArchetypeChoice is a single-answer multiple choice question.
	ArchetypeChoice Archetype = "choice"
	// ArchetypeNumeric asks for a typed dollar amount.
	ArchetypeNumeric Archetype = "numeric"
)

// SortDirection is the required order for ordering questions.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Option is one selectable answer in a multiple choice question.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Question is a single assessment item. Questions are immutable once a
// quiz is loaded; archetype-specific fields are zero for other archetypes.
type Question struct {
	ID        int       `json:"id"` // 1-based within the quiz
	Archetype Archetype `json:"archetype"`
	Prompt    string    `json:"prompt"`

	// Composition
	TargetAmount float64  `json:"target_amount,omitempty"`
	MaxItems     int      `json:"max_items,omitempty"` // 0 = unlimited
	Allowed      []string `json:"allowed,omitempty"`   // denomination IDs offered to the student

	// Ordering
	ItemPool  []string      `json:"item_pool,omitempty"` // denomination IDs to arrange
	Direction SortDirection `json:"direction,omitempty"`

	// Boolean
	ExpectedBool bool `json:"expected_bool,omitempty"`

	// Choice
	Options       []Option `json:"options,omitempty"`
	CorrectOption string   `json:"correct_option,omitempty"`

	// Numeric
	ExpectedValue float64 `json:"expected_value,omitempty"`
	Tolerance     float64 `json:"tolerance,omitempty"` // 0 = DefaultTolerance
}

// Quiz is a fixed ordered set of questions.
type Quiz struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	GradeLevel    int        `json:"grade_level"`
	FormatVersion string     `json:"format_version"`
	Questions     []Question `json:"questions"`
}

// QuestionByID returns the question with the given 1-based ID.
func (q *Quiz) QuestionByID(id int) (Question, bool) {
	for _, qn := range q.Questions {
		if qn.ID == id {
			return qn, true
		}
	}
	return Question{}, false
}

// MaxScore is the maximum achievable score: one point per question.
func (q *Quiz) MaxScore() float64 {
	return float64(len(q.Questions))
}
