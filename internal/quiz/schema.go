package quiz

// quizSchema defines the JSON schema quiz definition files must satisfy
// before they are decoded. Structural mistakes in a definition file are
// caught here with a pointer to the offending field, instead of
// surfacing later as a zero-valued question.
var quizSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"title": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"grade_level": map[string]any{
			"type":    "integer",
			"minimum": 1,
			"maximum": 6,
		},
		"format_version": map[string]any{
			"type":    "string",
			"pattern": "^v[0-9]+(\\.[0-9]+)*$",
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":    "integer",
						"minimum": 1,
					},
					"archetype": map[string]any{
						"type": "string",
						"enum": []any{"composition", "ordering", "boolean", "choice", "numeric"},
					},
					"prompt": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"target_amount": map[string]any{
						"type":             "number",
						"exclusiveMinimum": 0,
					},
					"max_items": map[string]any{
						"type":    "integer",
						"minimum": 0,
					},
					"allowed": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"item_pool": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"direction": map[string]any{
						"type": "string",
						"enum": []any{"asc", "desc"},
					},
					"expected_bool": map[string]any{
						"type": "boolean",
					},
					"options": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":    map[string]any{"type": "string", "minLength": 1},
								"label": map[string]any{"type": "string", "minLength": 1},
							},
							"required":             []any{"id", "label"},
							"additionalProperties": false,
						},
					},
					"correct_option": map[string]any{
						"type": "string",
					},
					"expected_value": map[string]any{
						"type": "number",
					},
					"tolerance": map[string]any{
						"type":    "number",
						"minimum": 0,
					},
				},
				"required":             []any{"id", "archetype", "prompt"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"id", "title", "grade_level", "format_version", "questions"},
	"additionalProperties": false,
}
