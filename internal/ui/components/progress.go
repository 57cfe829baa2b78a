package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jazzmini/jsquiz/internal/ui/theme"
)

// Answer marks for the current question cell.
const (
	Unanswered = iota
	AnsweredRight
	AnsweredWrong
)

// QuestionTrack shows how far a level run has got: one cell per question,
// the current cell coloured by its answer.
type QuestionTrack struct {
	Total   int
	Current int // zero-based question index
	Mark    int
	Width   int
}

// NewQuestionTrack creates a track for a level of total questions.
func NewQuestionTrack(total, current, mark, width int) QuestionTrack {
	return QuestionTrack{Total: total, Current: current, Mark: mark, Width: width}
}

// View renders the track. When cells do not fit the width it falls back
// to a plain count.
func (t QuestionTrack) View() string {
	if t.Total <= 0 {
		return ""
	}
	current := min(max(t.Current, 0), t.Total-1)

	// Each cell is two columns wide plus a trailing count.
	count := fmt.Sprintf(" %d/%d", current+1, t.Total)
	if t.Total*2+len(count) > t.Width {
		return theme.Muted.Render(strings.TrimSpace(count))
	}

	done := theme.TrackDone.Render(strings.Repeat("■ ", current))
	cell := t.currentCell()
	pending := theme.TrackPending.Render(strings.Repeat("□ ", t.Total-current-1))

	return done + cell + pending + theme.Muted.Render(count)
}

func (t QuestionTrack) currentCell() string {
	switch t.Mark {
	case AnsweredRight:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("● ")
	case AnsweredWrong:
		return lipgloss.NewStyle().Foreground(theme.Error).Render("● ")
	}
	return theme.TrackCurrent.Render("◆ ")
}
