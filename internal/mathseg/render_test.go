package mathseg

import (
	"errors"
	"strings"
	"testing"
)

func TestPlan_LineBreaks(t *testing.T) {
	plan := Plan(Split("a\n\nb $x$\n"))
	want := []Instruction{
		{Op: OpText, Text: "a"},
		{Op: OpLineBreak},
		{Op: OpLineBreak},
		{Op: OpText, Text: "b "},
		{Op: OpMath, Math: "x"},
		{Op: OpLineBreak},
	}
	if len(plan) != len(want) {
		t.Fatalf("expected %d instructions, got %d: %+v", len(want), len(plan), plan)
	}
	for i := range want {
		if plan[i] != want[i] {
			t.Errorf("instruction %d: got %+v, want %+v", i, plan[i], want[i])
		}
	}
}

func TestRender_FallbackOnError(t *testing.T) {
	r := RendererFunc(func(expr string, opts Options) (string, error) {
		if expr == "bad" {
			return "", errors.New("parse error")
		}
		if !opts.FailSoft {
			t.Errorf("expected fail-soft rendering")
		}
		return "<" + expr + ">", nil
	})

	frags := Render("$good$ and $$bad$$", r, "")
	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %+v", frags)
	}
	if frags[0].Markup != "<good>" || frags[0].Fallback {
		t.Fatalf("unexpected first fragment: %+v", frags[0])
	}
	if frags[2].Markup != "$$bad$$" || !frags[2].Fallback {
		t.Fatalf("expected literal fallback, got %+v", frags[2])
	}
}

func TestRender_PanicDoesNotAbort(t *testing.T) {
	r := RendererFunc(func(expr string, opts Options) (string, error) {
		if expr == "boom" {
			panic("renderer exploded")
		}
		return expr, nil
	})

	frags := Render("$boom$ then $ok$", r, "")
	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %+v", frags)
	}
	if frags[0].Markup != "$boom$" || !frags[0].Fallback {
		t.Fatalf("expected fallback for panicking unit, got %+v", frags[0])
	}
	if frags[2].Markup != "ok" {
		t.Fatalf("expected later unit rendered, got %+v", frags[2])
	}
}

func TestDelimiterRenderer(t *testing.T) {
	frags := Render(`$\frac{1}{2}$ $$\sqrt{x$$`, DelimiterRenderer{}, "")
	if frags[0].Markup != `\(\frac{1}{2}\)` {
		t.Fatalf("unexpected inline markup %q", frags[0].Markup)
	}
	last := frags[len(frags)-1]
	if !last.Fallback || last.Markup != `$$\sqrt{x$$` {
		t.Fatalf("expected unbalanced braces to fall back, got %+v", last)
	}
}

func TestHTML_EscapesText(t *testing.T) {
	frags := Render("<b>x</b>\n$a<b$", DelimiterRenderer{}, "")
	got := HTML(frags, "")
	if strings.Contains(got, "<b>") {
		t.Fatalf("literal text not escaped: %s", got)
	}
	if !strings.Contains(got, "<br>") {
		t.Fatalf("expected line break: %s", got)
	}
	if !strings.Contains(got, `<span class="math math-inline">\(a&lt;b\)</span>`) {
		t.Fatalf("unexpected math markup: %s", got)
	}
}

func TestPlainText(t *testing.T) {
	frags := Render("x\n$y$", DelimiterRenderer{}, "")
	if got := PlainText(frags); got != "x\n\\(y\\)" {
		t.Fatalf("unexpected plain text %q", got)
	}
}
