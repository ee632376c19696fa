package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Math    = lipgloss.Color("#14B8A6") // Teal
	Accent  = lipgloss.Color("#F97316") // Orange
	Error   = lipgloss.Color("#F43F5E") // Rose
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	BgCard  = lipgloss.Color("#1E293B") // Dark Slate
	Border  = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Math
var (
	InlineMath = lipgloss.NewStyle().
			Foreground(Math)

	DisplayMath = lipgloss.NewStyle().
			Foreground(Math).
			Bold(true).
			Padding(0, 4)

	MathFallback = lipgloss.NewStyle().
			Foreground(Error).
			Underline(true)
)

// Layout
var (
	Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	FocusedPane = Pane.
			BorderForeground(Primary)
)
