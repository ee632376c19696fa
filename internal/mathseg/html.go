package mathseg

import (
	"html"
	"strings"
)

// HTML projects fragments onto an HTML snippet. Typeset math is wrapped in a
// span carrying its mode; fallback units are shown as escaped literal source.
func HTML(frags []Fragment, errorColor string) string {
	if errorColor == "" {
		errorColor = DefaultErrorColor
	}
	var b strings.Builder
	for _, f := range frags {
		switch f.Op {
		case OpText:
			b.WriteString(html.EscapeString(f.Text))
		case OpLineBreak:
			b.WriteString("<br>")
		case OpMath:
			class := "math math-inline"
			if f.Display {
				class = "math math-display"
			}
			b.WriteString(`<span class="`)
			b.WriteString(class)
			b.WriteString(`"`)
			if f.Fallback {
				b.WriteString(` data-error-color="`)
				b.WriteString(html.EscapeString(errorColor))
				b.WriteString(`"`)
			}
			b.WriteString(">")
			b.WriteString(html.EscapeString(f.Markup))
			b.WriteString("</span>")
		}
	}
	return b.String()
}
