// Package preview renders math-segmented text in the terminal and hosts a
// live editor that re-renders on every keystroke.
package preview

import (
	"strings"

	"github.com/quizsmith/quizsmith/internal/mathseg"
	"github.com/quizsmith/quizsmith/internal/ui/theme"
)

// Terminal projects fragments onto styled terminal text. Math is shown as
// its TeX source in the math style; display math gets a line of its own.
// Units that failed to typeset show their literal source in the error style.
func Terminal(frags []mathseg.Fragment) string {
	var b strings.Builder
	atLineStart := true
	pendingBreak := false

	write := func(s string) {
		if pendingBreak {
			b.WriteString("\n")
			pendingBreak = false
		}
		b.WriteString(s)
		atLineStart = false
	}

	for _, f := range frags {
		switch f.Op {
		case mathseg.OpText:
			write(theme.Body.Render(f.Text))
		case mathseg.OpLineBreak:
			b.WriteString("\n")
			atLineStart = true
			pendingBreak = false
		case mathseg.OpMath:
			switch {
			case f.Fallback:
				write(theme.MathFallback.Render(f.Markup))
			case f.Display:
				if !atLineStart {
					b.WriteString("\n")
				}
				pendingBreak = false
				write(theme.DisplayMath.Render(f.Math))
				pendingBreak = true
			default:
				write(theme.InlineMath.Render(f.Math))
			}
		}
	}
	return b.String()
}

// RenderText runs the full pipeline for one input. A nil renderer uses
// mathseg.DelimiterRenderer.
func RenderText(text string, r mathseg.Renderer) string {
	if r == nil {
		r = mathseg.DelimiterRenderer{}
	}
	return Terminal(mathseg.Render(text, r, ""))
}
