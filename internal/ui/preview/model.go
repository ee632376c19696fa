package preview

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizsmith/quizsmith/internal/mathseg"
	"github.com/quizsmith/quizsmith/internal/ui/layout"
	"github.com/quizsmith/quizsmith/internal/ui/theme"
)

// Model is the live preview: an editor on top, rendered output below.
type Model struct {
	editor   textarea.Model
	renderer mathseg.Renderer

	frags    []mathseg.Fragment
	rendered string
	source   string

	width  int
	height int
}

// New creates a preview seeded with text.
func New(text string, r mathseg.Renderer) Model {
	if r == nil {
		r = mathseg.DelimiterRenderer{}
	}
	ta := textarea.New()
	ta.Placeholder = "Type text with $inline$ or $$display$$ math..."
	ta.ShowLineNumbers = false
	ta.SetValue(text)
	ta.Focus()

	m := Model{editor: ta, renderer: r}
	m.rebuild()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != m.source {
		m.rebuild()
	}
	return m, cmd
}

// rebuild re-renders the whole output from the current editor text.
func (m *Model) rebuild() {
	m.source = m.editor.Value()
	m.frags = mathseg.Render(m.source, m.renderer, "")
	m.rendered = Terminal(m.frags)
}

func (m *Model) resize() {
	w := max(m.width-4, 10)
	m.editor.SetWidth(w)
	m.editor.SetHeight(max((m.height-10)/3, 3))
}

// Rendered returns the current rendered output.
func (m Model) Rendered() string {
	return m.rendered
}

// Value returns the current editor text.
func (m Model) Value() string {
	return m.source
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

func (m Model) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader("LaTeX preview", m.status(), m.width)
	footer := layout.RenderFooter([]layout.KeyHint{
		{Key: "Esc", Description: "Quit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}, m.width)

	editor := theme.FocusedPane.Width(m.width).Render(m.editor.View())
	remaining := layout.ContentHeight(header, footer, m.height) - lipgloss.Height(editor)
	output := theme.Pane.
		Width(m.width).
		Height(max(remaining, 3)).
		MaxHeight(max(remaining, 3)).
		Render(m.rendered)

	return layout.RenderFrame(header, editor+"\n"+output, footer, m.width, m.height)
}

func (m Model) status() string {
	var math, failed int
	for _, f := range m.frags {
		if f.Op != mathseg.OpMath {
			continue
		}
		math++
		if f.Fallback {
			failed++
		}
	}
	parts := []string{fmt.Sprintf("%d math", math)}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	return strings.Join(parts, " · ")
}

// Run starts the interactive preview.
func Run(text string, r mathseg.Renderer) error {
	p := tea.NewProgram(New(text, r))
	_, err := p.Run()
	return err
}
