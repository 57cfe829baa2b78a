package components

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jazzmini/jsquiz/internal/quiz"
	"github.com/jazzmini/jsquiz/internal/ui/theme"
)

// GridColumns is the number of level tiles per row.
const GridColumns = 5

// GridKeys are the bindings understood by LevelGrid.
type GridKeys struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// DefaultGridKeys returns arrow navigation (j/k for rows) with Enter to start.
func DefaultGridKeys() GridKeys {
	return GridKeys{
		Left:   key.NewBinding(key.WithKeys("left")),
		Right:  key.NewBinding(key.WithKeys("right")),
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Select: key.NewBinding(key.WithKeys("enter", "space")),
	}
}

// LevelSelectedMsg is emitted when a playable level is picked.
type LevelSelectedMsg struct {
	Level int
}

// LevelGrid shows every level with its lock status.
type LevelGrid struct {
	Stats  quiz.GlobalStats
	Cursor int // level number, 1-based
	Keys   GridKeys
}

// NewLevelGrid places the cursor on the frontier level.
func NewLevelGrid(stats quiz.GlobalStats) LevelGrid {
	g := LevelGrid{Keys: DefaultGridKeys()}
	g.SetStats(stats)
	return g
}

// SetStats updates lock state, moving the cursor to the frontier when it
// was left on a locked level.
func (g *LevelGrid) SetStats(stats quiz.GlobalStats) {
	g.Stats = stats.Normalize()
	if g.Cursor < 1 || !g.Stats.Playable(g.Cursor) {
		g.Cursor = min(g.Stats.HighestLevel, quiz.TotalLevels)
	}
}

// Update moves the cursor or selects the level under it. Locked levels
// cannot be selected.
func (g LevelGrid) Update(msg tea.Msg) (LevelGrid, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	switch {
	case key.Matches(kmsg, g.Keys.Left):
		g.move(-1)
	case key.Matches(kmsg, g.Keys.Right):
		g.move(1)
	case key.Matches(kmsg, g.Keys.Up):
		g.move(-GridColumns)
	case key.Matches(kmsg, g.Keys.Down):
		g.move(GridColumns)
	case key.Matches(kmsg, g.Keys.Select):
		if g.Stats.Playable(g.Cursor) {
			level := g.Cursor
			return g, func() tea.Msg { return LevelSelectedMsg{Level: level} }
		}
	}
	return g, nil
}

func (g *LevelGrid) move(delta int) {
	next := g.Cursor + delta
	if next >= 1 && next <= quiz.TotalLevels {
		g.Cursor = next
	}
}

// View renders the tiles in rows of GridColumns.
func (g LevelGrid) View() string {
	var rows []string
	var row []string
	for level := 1; level <= quiz.TotalLevels; level++ {
		row = append(row, g.tile(level))
		if len(row) == GridColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (g LevelGrid) tile(level int) string {
	status := g.Stats.Status(level)

	var style lipgloss.Style
	var mark string
	switch status {
	case quiz.LevelUnlocked:
		style, mark = theme.TileUnlocked, "✓"
	case quiz.LevelNext:
		style, mark = theme.TileNext, "▶"
	default:
		style, mark = theme.TileLocked, "🔒"
	}
	if level == g.Cursor {
		style = theme.TileCursor
	}
	return style.Width(8).Render(fmt.Sprintf("%d\n%s", level, mark))
}
