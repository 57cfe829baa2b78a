package session

import (
	"time"

	"github.com/jazzmini/jsquiz/internal/quiz"
)

// Phase represents the current phase of the quiz session.
type Phase int

const (
	PhaseStart      Phase = iota // Level selection
	PhaseInProgress              // Answering questions
	PhaseResult                  // Post-level summary
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in_progress"
	case PhaseResult:
		return "result"
	default:
		return "start"
	}
}

// SessionState tracks the runtime state of the active quiz session.
// It has a single owner and is not safe for concurrent use.
type SessionState struct {
	// Bank supplies the questions for each level.
	Bank *quiz.Bank

	// SessionID identifies the current level run. Regenerated on every start.
	SessionID string

	// CurrentLevel is the level being played or last played.
	CurrentLevel int

	// Questions is the question set for CurrentLevel, in bank order.
	Questions []quiz.Question

	// QuestionIndex is the index into Questions of the active question.
	QuestionIndex int

	// Score counts questions whose first selection was correct.
	Score int

	// SelectedOption is the option chosen for the active question.
	// Only meaningful when Answered is true.
	SelectedOption string

	// Answered is true once an option has been selected for the active question.
	Answered bool

	// ShowExplanation is true while the active question's explanation is revealed.
	ShowExplanation bool

	// LastAnswerCorrect records whether the most recent selection was correct.
	LastAnswerCorrect bool

	// Phase is the current session phase.
	Phase Phase

	// LevelPassed is computed when the last question is advanced past.
	LevelPassed bool

	// StartTime is when the current level was started.
	StartTime time.Time
}

// NewSessionState creates a session positioned at level selection.
func NewSessionState(bank *quiz.Bank) *SessionState {
	return &SessionState{
		Bank:         bank,
		CurrentLevel: 1,
		Phase:        PhaseStart,
	}
}
