// Package screen defines what the router stacks and the messages every
// stacked screen may receive.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/jazzmini/jsquiz/internal/quiz"
	"github.com/jazzmini/jsquiz/internal/ui/layout"
)

// Screen is one page of the quiz: the splash, the level grid, a level run
// or the attempt history. View gets the area between header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider is implemented by screens whose footer hints depend on
// their state.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatsMsg carries the latest shared progress document.
type StatsMsg struct {
	Stats quiz.GlobalStats
}

// WalletMsg reports the connected account, "" when disconnected.
type WalletMsg struct {
	Address string
}
