package completion

import (
	"encoding/json"
	"strings"
)

// Task configures the generic completion routine for one endpoint.
type Task struct {
	// Name is the route name, e.g. "generate-multiple-choice".
	Name string

	// Purpose labels log lines and recorded events.
	Purpose string

	// RequestSchema validates the raw request body.
	RequestSchema *Schema

	// ResultSchema is checked against the recovered value. Mismatches are
	// logged only; the value is still returned.
	ResultSchema *Schema

	// Prepare decodes a validated body into prompt inputs. Defaults to a
	// plain decode into Input.
	Prepare func(body []byte) (Input, error)

	// System and User build the two prompt messages.
	System func(in Input) string
	User   func(in Input) string

	// Fallback produces the result when the completion text is not
	// recoverable as JSON. raw is the completion text and err the recovery
	// error.
	Fallback func(in Input, raw string, err error) (any, error)

	// MaxTokens caps the completion length. Zero leaves it to the provider.
	MaxTokens int
}

func decodeInput(body []byte) (Input, error) {
	var in Input
	if err := json.Unmarshal(body, &in); err != nil {
		return Input{}, &ValidationError{Message: "request body must be valid JSON"}
	}
	return in, nil
}

// Tasks returns every completion task in route order.
func Tasks() []*Task {
	return []*Task{MultipleChoice, ShortAnswer, WeaknessAnalysis, Solution}
}

// Lookup finds a task by route name or purpose.
func Lookup(name string) (*Task, bool) {
	name = strings.TrimSpace(strings.ToLower(name))
	for _, t := range Tasks() {
		if t.Name == name || t.Purpose == name {
			return t, true
		}
	}
	return nil, false
}

// latexRule is shared by every prompt that may produce math.
const latexRule = "Write math formulas and symbols in LaTeX (for example $x^2$ or $$\\frac{a}{b}$$)."
