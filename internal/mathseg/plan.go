package mathseg

import "strings"

// Op is a render instruction opcode.
type Op string

const (
	OpText      Op = "text"
	OpLineBreak Op = "break"
	OpMath      Op = "math"
)

// Instruction is one step of the render plan. UI adapters project a plan
// onto whatever output they drive.
type Instruction struct {
	Op      Op     `json:"op"`
	Text    string `json:"text,omitempty"`
	Math    string `json:"math,omitempty"`
	Display bool   `json:"display,omitempty"`
}

// Plan converts segments into instructions. Literal runs are split on
// newlines: each non-empty line becomes a text run and consecutive lines are
// separated by a line break.
func Plan(segs []Segment) []Instruction {
	var out []Instruction
	for _, s := range segs {
		if s.Kind == KindMath {
			out = append(out, Instruction{Op: OpMath, Math: s.Math, Display: s.Display})
			continue
		}
		if s.Text == "" {
			continue
		}
		lines := strings.Split(s.Text, "\n")
		for i, line := range lines {
			if line != "" {
				out = append(out, Instruction{Op: OpText, Text: line})
			}
			if i < len(lines)-1 {
				out = append(out, Instruction{Op: OpLineBreak})
			}
		}
	}
	return out
}

// Literal returns the delimited source form of a math instruction, used
// when the renderer cannot typeset it.
func Literal(expr string, display bool) string {
	if display {
		return displayDelim + expr + displayDelim
	}
	return string(inlineDelim) + expr + string(inlineDelim)
}
