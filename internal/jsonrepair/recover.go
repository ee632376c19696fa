// Package jsonrepair recovers a JSON value from free-text LLM output that may
// wrap it in prose or a fenced code block, or mangle its escape sequences.
package jsonrepair

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// fencedBlock matches the first ``` or ```json fenced region.
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// MalformedResponseError reports completion text that could not be parsed
// as JSON even after the repair pass.
type MalformedResponseError struct {
	Content string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed JSON in completion: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ExtractFenced returns the content of the first fenced block in text, or
// text unchanged when there is none.
func ExtractFenced(text string) string {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}

// Repair escapes every backslash and then collapses the doubled forms of
// \n, \t and \" back to single escapes. It is lossy for input that already
// carried other valid escapes and is only meant as a second attempt.
func Repair(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `\\n`, `\n`)
	s = strings.ReplaceAll(s, `\\t`, `\t`)
	s = strings.ReplaceAll(s, `\\"`, `\"`)
	return s
}

// Recover parses the JSON value carried by text. It tries the extracted,
// trimmed content as-is first, then once more after Repair.
func Recover(text string) (any, error) {
	content := strings.TrimSpace(ExtractFenced(text))

	var v any
	firstErr := json.Unmarshal([]byte(content), &v)
	if firstErr == nil {
		return v, nil
	}

	v = nil
	if err := json.Unmarshal([]byte(Repair(content)), &v); err != nil {
		return nil, &MalformedResponseError{
			Content: content,
			Err:     fmt.Errorf("direct parse: %v; after repair: %w", firstErr, err),
		}
	}
	return v, nil
}

// RecoverInto recovers text and decodes the result into dst.
func RecoverInto(text string, dst any) error {
	v, err := Recover(text)
	if err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("re-encode recovered value: %w", err)
	}
	return json.Unmarshal(b, dst)
}
