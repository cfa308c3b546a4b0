package quiz

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/coinwise/internal/currency"
)

// FormatVersion is the quiz definition format this build understands.
// Files declaring a newer major version are rejected at load time.
const FormatVersion = "v1"

//go:embed definitions/*.json
var definitionsFS embed.FS

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiledQuizSchema compiles the definition schema once and caches it.
func compiledQuizSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not
		// raw bytes. Marshal then unmarshal for a clean representation.
		raw, err := json.Marshal(quizSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal quiz schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			compileErr = fmt.Errorf("parse quiz schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://quiz.json"
		if err := c.AddResource(url, parsed); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// Parse validates raw definition JSON against the schema, checks the
// format version and question consistency, and decodes the quiz.
func Parse(raw []byte) (*Quiz, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledQuizSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var q Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}

	if !semver.IsValid(q.FormatVersion) {
		return nil, fmt.Errorf("quiz %q: invalid format_version %q", q.ID, q.FormatVersion)
	}
	if semver.Major(q.FormatVersion) != semver.Major(FormatVersion) {
		return nil, fmt.Errorf("quiz %q: format %s not supported (this build reads %s)", q.ID, q.FormatVersion, FormatVersion)
	}

	if err := checkQuestions(&q); err != nil {
		return nil, fmt.Errorf("quiz %q: %w", q.ID, err)
	}
	return &q, nil
}

// checkQuestions enforces the constraints the schema can't express:
// sequential IDs, archetype parameters present, denomination IDs real.
func checkQuestions(q *Quiz) error {
	for i, qn := range q.Questions {
		if qn.ID != i+1 {
			return fmt.Errorf("question %d: id %d out of sequence", i+1, qn.ID)
		}
		switch qn.Archetype {
		case ArchetypeComposition:
			if qn.TargetAmount <= 0 {
				return fmt.Errorf("question %d: composition needs a target_amount", qn.ID)
			}
			if err := checkDenomIDs(qn.Allowed); err != nil {
				return fmt.Errorf("question %d: %w", qn.ID, err)
			}
		case ArchetypeOrdering:
			if len(qn.ItemPool) < 2 {
				return fmt.Errorf("question %d: ordering needs at least 2 items", qn.ID)
			}
			if qn.Direction != SortAscending && qn.Direction != SortDescending {
				return fmt.Errorf("question %d: ordering needs a direction", qn.ID)
			}
			if err := checkDenomIDs(qn.ItemPool); err != nil {
				return fmt.Errorf("question %d: %w", qn.ID, err)
			}
		case ArchetypeChoice:
			if len(qn.Options) < 2 {
				return fmt.Errorf("question %d: choice needs at least 2 options", qn.ID)
			}
			found := false
			for _, opt := range qn.Options {
				if opt.ID == qn.CorrectOption {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("question %d: correct_option %q not among options", qn.ID, qn.CorrectOption)
			}
		case ArchetypeNumeric:
			if qn.ExpectedValue == 0 {
				return fmt.Errorf("question %d: numeric needs an expected_value", qn.ID)
			}
		case ArchetypeBoolean:
			// expected_bool zero value is a valid answer key
		default:
			return fmt.Errorf("question %d: unknown archetype %q", qn.ID, qn.Archetype)
		}
	}
	return nil
}

func checkDenomIDs(ids []string) error {
	for _, id := range ids {
		if _, ok := currency.ByID(id); !ok {
			return fmt.Errorf("unknown denomination %q", id)
		}
	}
	return nil
}

// Registry holds loaded quizzes by ID.
type Registry struct {
	byID map[string]*Quiz
}

// Get returns the quiz with the given ID.
func (r *Registry) Get(id string) (*Quiz, bool) {
	q, ok := r.byID[id]
	return q, ok
}

// List returns all quizzes sorted by grade level, then ID.
func (r *Registry) List() []*Quiz {
	out := make([]*Quiz, 0, len(r.byID))
	for _, q := range r.byID {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GradeLevel != out[j].GradeLevel {
			return out[i].GradeLevel < out[j].GradeLevel
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// LoadBuiltins parses every embedded quiz definition.
func LoadBuiltins() (*Registry, error) {
	entries, err := definitionsFS.ReadDir("definitions")
	if err != nil {
		return nil, fmt.Errorf("read embedded definitions: %w", err)
	}

	reg := &Registry{byID: make(map[string]*Quiz, len(entries))}
	for _, e := range entries {
		raw, err := definitionsFS.ReadFile("definitions/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		q, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if _, dup := reg.byID[q.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate quiz id %q", e.Name(), q.ID)
		}
		reg.byID[q.ID] = q
	}
	return reg, nil
}
