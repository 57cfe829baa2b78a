package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, JavaScript yellow on dark slate
var (
	Primary   = lipgloss.Color("#F7DF1E") // JS Yellow
	Secondary = lipgloss.Color("#38BDF8") // Sky
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Panels
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Answer options and verdicts
var (
	OptionCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Option = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Muted = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Level tiles
var (
	TileUnlocked = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Success).
			Foreground(Success).
			Align(lipgloss.Center)

	TileNext = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Foreground(Primary).
			Bold(true).
			Align(lipgloss.Center)

	TileLocked = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Foreground(TextDim).
			Align(lipgloss.Center)

	TileCursor = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Secondary).
			Foreground(Text).
			Bold(true).
			Align(lipgloss.Center)
)

// Question track
var (
	TrackDone    = lipgloss.NewStyle().Foreground(Secondary)
	TrackCurrent = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	TrackPending = lipgloss.NewStyle().Foreground(Border)
)
