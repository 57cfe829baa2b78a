// Package levels is the level selection screen.
package levels

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jazzmini/jsquiz/internal/quiz"
	"github.com/jazzmini/jsquiz/internal/router"
	"github.com/jazzmini/jsquiz/internal/screen"
	"github.com/jazzmini/jsquiz/internal/screens/history"
	"github.com/jazzmini/jsquiz/internal/screens/play"
	"github.com/jazzmini/jsquiz/internal/screens/welcome"
	sess "github.com/jazzmini/jsquiz/internal/session"
	"github.com/jazzmini/jsquiz/internal/store"
	"github.com/jazzmini/jsquiz/internal/ui/components"
	"github.com/jazzmini/jsquiz/internal/ui/layout"
	"github.com/jazzmini/jsquiz/internal/ui/theme"
)

// LevelsScreen shows the level grid and starts the chosen level.
type LevelsScreen struct {
	deps   play.Deps
	events store.EventRepo
	grid   components.LevelGrid
	errMsg string
}

var _ screen.Screen = (*LevelsScreen)(nil)
var _ screen.KeyHintProvider = (*LevelsScreen)(nil)

// New creates a LevelsScreen. events may be nil, which hides attempt history.
func New(deps play.Deps, stats quiz.GlobalStats, events store.EventRepo) *LevelsScreen {
	return &LevelsScreen{
		deps:   deps,
		events: events,
		grid:   components.NewLevelGrid(stats),
	}
}

func (s *LevelsScreen) Init() tea.Cmd {
	return nil
}

func (s *LevelsScreen) Title() string {
	return "Levels"
}

func (s *LevelsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←↑↓→", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
	}
	if s.events != nil {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Q", Description: "Quit"})
}

// Stats returns the progress the grid is drawn from.
func (s *LevelsScreen) Stats() quiz.GlobalStats {
	return s.grid.Stats
}

func (s *LevelsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StatsMsg:
		s.grid.SetStats(msg.Stats)
		return s, nil

	case components.LevelSelectedMsg:
		return s, s.start(msg.Level)

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, tea.Quit
		case "h":
			if s.events != nil {
				events := s.events
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(events)}
				}
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.grid, cmd = s.grid.Update(msg)
	return s, cmd
}

func (s *LevelsScreen) start(level int) tea.Cmd {
	state := s.deps.State
	if state.Phase != sess.PhaseStart {
		sess.Back(state)
	}
	if err := sess.StartQuiz(state, s.grid.Stats, level); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	deps := s.deps
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: play.New(deps)}
	}
}

func (s *LevelsScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(s.grid.Stats, cw))
	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, s.grid.View()))

	hint := fmt.Sprintf("Score %d/%d to unlock the next level.", quiz.PassThreshold, quiz.QuestionsPerLevel)
	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, theme.Hint.Render(hint)))

	if s.errMsg != "" {
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, theme.Incorrect.Render(s.errMsg)))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderTitle(cw int, compact bool) string {
	width := cw
	if compact {
		width = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(width))
}

// renderStatsBar renders the global progress in a double-bordered box.
func renderStatsBar(stats quiz.GlobalStats, cw int) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	levelStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	line := fmt.Sprintf("%s   %s",
		scoreStyle.Render(fmt.Sprintf("★ BEST %d", stats.MaxScore)),
		levelStyle.Render(fmt.Sprintf("▲ LEVEL %d/%d", min(stats.HighestLevel, quiz.TotalLevels), quiz.TotalLevels)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Render(line)
}
