// Package mathseg splits text containing $...$ and $$...$$ LaTeX spans into
// ordered segments and turns them into render instructions.
package mathseg

import "strings"

// Kind distinguishes literal text from math units.
type Kind int

const (
	KindText Kind = iota
	KindMath
)

func (k Kind) String() string {
	if k == KindMath {
		return "math"
	}
	return "text"
}

// Segment is one ordered piece of the scanned input.
type Segment struct {
	Kind Kind

	// Text is the literal run for KindText segments.
	Text string

	// Math is the trimmed expression for KindMath segments.
	Math string

	// Display is true for $$...$$ units.
	Display bool

	// Source is the exact input substring this segment covers, delimiters
	// included. Joining every Source in order yields the original input.
	Source string
}

const (
	displayDelim = "$$"
	inlineDelim  = '$'
)

// Split scans text in two passes: display spans first, then inline spans
// inside the literal runs that remain. Unmatched delimiters stay literal.
func Split(text string) []Segment {
	var out []Segment
	for _, seg := range splitDisplay(text) {
		if seg.Kind == KindText {
			out = append(out, splitInline(seg.Text)...)
			continue
		}
		out = append(out, seg)
	}
	return out
}

// Join concatenates segment sources.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Source)
	}
	return b.String()
}

// splitDisplay extracts $$...$$ spans. The closing delimiter is the first
// "$$" after the opening one, so content may span lines.
func splitDisplay(text string) []Segment {
	var out []Segment
	pos := 0
	for pos < len(text) {
		open := strings.Index(text[pos:], displayDelim)
		if open < 0 {
			break
		}
		open += pos
		closeRel := strings.Index(text[open+len(displayDelim):], displayDelim)
		if closeRel < 0 {
			break
		}
		closeAt := open + len(displayDelim) + closeRel
		end := closeAt + len(displayDelim)

		if open > pos {
			out = append(out, textSegment(text[pos:open]))
		}
		out = append(out, Segment{
			Kind:    KindMath,
			Math:    strings.TrimSpace(text[open+len(displayDelim) : closeAt]),
			Display: true,
			Source:  text[open:end],
		})
		pos = end
	}
	if pos < len(text) {
		out = append(out, textSegment(text[pos:]))
	}
	return out
}

// splitInline extracts $...$ spans from a literal run. A span never crosses
// a newline: when one sits between an opening '$' and the next '$', the
// scan restarts from that next '$'.
func splitInline(text string) []Segment {
	var out []Segment
	pos := 0
	from := 0
	for from < len(text) {
		open := strings.IndexByte(text[from:], inlineDelim)
		if open < 0 {
			break
		}
		open += from
		closeRel := strings.IndexByte(text[open+1:], inlineDelim)
		if closeRel < 0 {
			break
		}
		closeAt := open + 1 + closeRel
		if strings.IndexByte(text[open+1:closeAt], '\n') >= 0 {
			from = closeAt
			continue
		}

		if open > pos {
			out = append(out, textSegment(text[pos:open]))
		}
		out = append(out, Segment{
			Kind:   KindMath,
			Math:   strings.TrimSpace(text[open+1 : closeAt]),
			Source: text[open : closeAt+1],
		})
		pos = closeAt + 1
		from = pos
	}
	if pos < len(text) {
		out = append(out, textSegment(text[pos:]))
	}
	return out
}

func textSegment(s string) Segment {
	return Segment{Kind: KindText, Text: s, Source: s}
}
