package session

import (
	"time"

	"github.com/jazzmini/jsquiz/internal/quiz"
)

// LevelSummary holds the data displayed on the result screen.
type LevelSummary struct {
	SessionID string
	Level     int
	Score     int
	Total     int
	Passed    bool
	HasNext   bool
	Duration  time.Duration
}

// BuildSummary creates a LevelSummary from a session in PhaseResult.
func BuildSummary(state *SessionState) *LevelSummary {
	return &LevelSummary{
		SessionID: state.SessionID,
		Level:     state.CurrentLevel,
		Score:     state.Score,
		Total:     len(state.Questions),
		Passed:    state.LevelPassed,
		HasNext:   state.LevelPassed && state.CurrentLevel < quiz.TotalLevels,
		Duration:  time.Since(state.StartTime),
	}
}
