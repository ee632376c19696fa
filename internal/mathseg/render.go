package mathseg

import (
	"fmt"
	"strings"
)

// DefaultErrorColor is passed to renderers that highlight invalid input.
const DefaultErrorColor = "#cc0000"

// Options are handed to the math renderer for every unit.
type Options struct {
	DisplayMode bool
	FailSoft    bool
	ErrorColor  string
}

// Renderer typesets a single math expression into adapter-specific markup.
type Renderer interface {
	RenderMath(expr string, opts Options) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(expr string, opts Options) (string, error)

func (f RendererFunc) RenderMath(expr string, opts Options) (string, error) {
	return f(expr, opts)
}

// Fragment is an instruction after the renderer ran. For math fragments,
// Markup holds the renderer's output, or the literal delimited source when
// Fallback is set.
type Fragment struct {
	Op       Op     `json:"op"`
	Text     string `json:"text,omitempty"`
	Math     string `json:"math,omitempty"`
	Markup   string `json:"markup,omitempty"`
	Display  bool   `json:"display,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Render splits text, plans it and typesets each math unit. A failing unit
// degrades to its literal source; it never stops the remaining units.
func Render(text string, r Renderer, errorColor string) []Fragment {
	if errorColor == "" {
		errorColor = DefaultErrorColor
	}
	plan := Plan(Split(text))
	out := make([]Fragment, 0, len(plan))
	for _, in := range plan {
		f := Fragment{Op: in.Op, Text: in.Text, Math: in.Math, Display: in.Display}
		if in.Op == OpMath {
			markup, err := renderSafe(r, in.Math, Options{
				DisplayMode: in.Display,
				FailSoft:    true,
				ErrorColor:  errorColor,
			})
			if err != nil {
				f.Markup = Literal(in.Math, in.Display)
				f.Fallback = true
			} else {
				f.Markup = markup
			}
		}
		out = append(out, f)
	}
	return out
}

func renderSafe(r Renderer, expr string, opts Options) (markup string, err error) {
	if r == nil {
		return "", fmt.Errorf("no math renderer")
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("math renderer panicked: %v", p)
		}
	}()
	return r.RenderMath(expr, opts)
}

// DelimiterRenderer emits \( \) and \[ \] markup for client-side
// typesetting. Expressions with unbalanced braces are rejected.
type DelimiterRenderer struct{}

func (DelimiterRenderer) RenderMath(expr string, opts Options) (string, error) {
	if err := checkBraces(expr); err != nil {
		return "", err
	}
	if opts.DisplayMode {
		return `\[` + expr + `\]`, nil
	}
	return `\(` + expr + `\)`, nil
}

// checkBraces reports unbalanced { } groups, ignoring escaped braces.
func checkBraces(expr string) error {
	depth := 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("unexpected '}' at offset %d", i)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%d unclosed '{'", depth)
	}
	return nil
}

// PlainText flattens fragments back to text, using markup for math units.
func PlainText(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		switch f.Op {
		case OpText:
			b.WriteString(f.Text)
		case OpLineBreak:
			b.WriteByte('\n')
		case OpMath:
			b.WriteString(f.Markup)
		}
	}
	return b.String()
}
