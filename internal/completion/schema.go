package completion

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// compiled returns a cached compiled schema or compiles and caches it.
func (s *Schema) compiled() (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(s.Name, compiled)
	return compiled, nil
}

// Validate checks a decoded JSON value against the schema.
func (s *Schema) Validate(v any) error {
	compiled, err := s.compiled()
	if err != nil {
		return fmt.Errorf("schema %q: %w", s.Name, err)
	}
	return compiled.Validate(v)
}

// validateRequest decodes body and checks it against schema, reporting any
// problem as a ValidationError.
func validateRequest(schema *Schema, body []byte) error {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &ValidationError{Message: "request body must be valid JSON"}
	}
	if schema == nil {
		return nil
	}
	err := schema.Validate(parsed)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return &ValidationError{Message: "invalid request: " + leafMessage(ve.Error())}
	}
	return err
}

// leafMessage keeps the most specific line of a multi-line validation
// report, e.g. "at '/questionCount': value must be one of 5, 10, 15".
func leafMessage(report string) string {
	lines := strings.Split(strings.TrimSpace(report), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	return strings.TrimPrefix(last, "- ")
}

var nonBlankText = map[string]any{
	"type":      "string",
	"minLength": 1,
	"pattern":   `\S`,
}

var textRequestSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"text": nonBlankText,
	},
	"required": []any{"text"},
}

var multipleChoiceRequestSchema = &Schema{
	Name: "multiple-choice-request",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": nonBlankText,
			"questionCount": map[string]any{
				"type": "integer",
				"enum": []any{5, 10, 15},
			},
		},
		"required": []any{"text"},
	},
}

var shortAnswerRequestSchema = &Schema{Name: "short-answer-request", Definition: textRequestSchema}

var solutionRequestSchema = &Schema{Name: "solution-request", Definition: textRequestSchema}

var weaknessRequestSchema = &Schema{
	Name: "weakness-request",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"wrongAnswers": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":      map[string]any{"type": "string"},
						"question_type": map[string]any{"type": "string"},
					},
					"required": []any{"question"},
				},
			},
		},
		"required": []any{"wrongAnswers"},
	},
}

var multipleChoiceResultSchema = &Schema{
	Name: "multiple-choice-result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":      map[string]any{"type": "string"},
						"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2},
						"correctAnswer": map[string]any{"type": "integer", "minimum": 0},
						"explanation":   map[string]any{"type": "string"},
					},
					"required": []any{"question", "options", "correctAnswer"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

var shortAnswerResultSchema = &Schema{
	Name: "short-answer-result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":    map[string]any{"type": "string"},
						"answer":      map[string]any{"type": "string"},
						"keywords":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"explanation": map[string]any{"type": "string"},
					},
					"required": []any{"question", "answer"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

var weaknessResultSchema = &Schema{
	Name: "weakness-result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"weaknesses": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"category":   map[string]any{"type": "string"},
						"errorCount": map[string]any{"type": "number"},
						"errorRate":  map[string]any{"type": "number"},
						"examples":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
					"required": []any{"category"},
				},
			},
		},
		"required": []any{"weaknesses"},
	},
}

var solutionResultSchema = &Schema{
	Name: "solution-result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problems": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"problem":   map[string]any{"type": "string"},
						"solution":  map[string]any{"type": "string"},
						"keyPoints": map[string]any{"type": "string"},
					},
					"required": []any{"problem", "solution"},
				},
			},
		},
		"required": []any{"problems"},
	},
}
