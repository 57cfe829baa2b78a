// Package history lists recorded level completion attempts.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jazzmini/jsquiz/internal/router"
	"github.com/jazzmini/jsquiz/internal/screen"
	"github.com/jazzmini/jsquiz/internal/store"
	"github.com/jazzmini/jsquiz/internal/ui/layout"
	"github.com/jazzmini/jsquiz/internal/ui/theme"
)

// Limit is the number of most recent events loaded.
const Limit = 50

type historyLoadedMsg struct {
	Events []store.AttemptEvent
	Err    error
}

// HistoryScreen displays past attempt transitions, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.AttemptEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.eventRepo.QueryAttempts(context.Background(), store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No submissions yet. Pass a level to record one!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  Level %-2d  %-15s  %s",
			prefix, ev.Timestamp.Local().Format("Jan 02 15:04:05"), ev.Level, ev.Status, outcomeText(ev))

		style := lipgloss.NewStyle().Foreground(statusColor(ev.Status))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, detail := range details(ev) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+detail)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func outcomeText(ev store.AttemptEvent) string {
	switch {
	case ev.TxHash != "":
		return layout.ShortAddress(ev.TxHash)
	case ev.ErrorKind != "":
		return ev.ErrorKind
	}
	return ""
}

func details(ev store.AttemptEvent) []string {
	lines := []string{"attempt " + ev.AttemptID}
	if ev.Account != "" {
		lines = append(lines, "account "+ev.Account)
	}
	if ev.TxHash != "" {
		lines = append(lines, "hash "+ev.TxHash)
	}
	if ev.ErrorMessage != "" {
		lines = append(lines, "error "+ev.ErrorMessage)
	}
	return append(lines, fmt.Sprintf("after %dms", ev.LatencyMs))
}

func statusColor(status string) color.Color {
	switch status {
	case "submitted":
		return theme.Success
	case "failed":
		return theme.Error
	}
	return theme.Text
}
