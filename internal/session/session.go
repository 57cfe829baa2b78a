package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jazzmini/jsquiz/internal/quiz"
)

var (
	ErrInvalidLevel = errors.New("level out of range")
	ErrLevelLocked  = errors.New("level is locked")
	ErrWrongPhase   = errors.New("operation not allowed in current phase")
	ErrNotAnswered  = errors.New("current question has not been answered")
	ErrNoQuestions  = errors.New("no questions for level")
)

// StartQuiz begins level, resetting score, question index and selection.
//
// From PhaseStart the level must be playable under stats. From PhaseResult
// only a retry of the current level, or the next level after a pass, is
// allowed.
func StartQuiz(state *SessionState, stats quiz.GlobalStats, level int) error {
	if !quiz.ValidLevel(level) {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	switch state.Phase {
	case PhaseStart:
		if !stats.Playable(level) {
			return fmt.Errorf("%w: %d", ErrLevelLocked, level)
		}
	case PhaseResult:
		retry := level == state.CurrentLevel
		next := level == state.CurrentLevel+1 && state.LevelPassed
		if !retry && !next {
			return fmt.Errorf("%w: cannot move from level %d to %d", ErrLevelLocked, state.CurrentLevel, level)
		}
	default:
		return fmt.Errorf("%w: start from %s", ErrWrongPhase, state.Phase)
	}

	questions := state.Bank.ForLevel(level)
	if len(questions) == 0 {
		return fmt.Errorf("%w: %d", ErrNoQuestions, level)
	}

	state.SessionID = uuid.New().String()
	state.CurrentLevel = level
	state.Questions = questions
	state.QuestionIndex = 0
	state.Score = 0
	state.LevelPassed = false
	state.LastAnswerCorrect = false
	state.StartTime = time.Now()
	clearSelection(state)
	state.Phase = PhaseInProgress
	return nil
}

// SelectOption records the answer for the active question. Only the first
// selection per question has any effect; it returns false for ignored calls.
func SelectOption(state *SessionState, option string) bool {
	if state.Phase != PhaseInProgress || state.Answered {
		return false
	}
	q := CurrentQuestion(state)
	if q == nil || !hasOption(q, option) {
		return false
	}

	state.SelectedOption = option
	state.Answered = true
	state.ShowExplanation = true
	state.LastAnswerCorrect = q.IsCorrect(option)
	if state.LastAnswerCorrect {
		state.Score++
	}
	return true
}

// Advance moves past the answered question. On the last question it
// computes LevelPassed and enters PhaseResult, returning finished=true.
func Advance(state *SessionState) (finished bool, err error) {
	if state.Phase != PhaseInProgress {
		return false, fmt.Errorf("%w: advance from %s", ErrWrongPhase, state.Phase)
	}
	if !state.Answered {
		return false, ErrNotAnswered
	}

	clearSelection(state)
	if !IsLastQuestion(state) {
		state.QuestionIndex++
		return false, nil
	}

	state.LevelPassed = quiz.Passed(state.Score)
	state.Phase = PhaseResult
	return true, nil
}

// Back returns to level selection.
func Back(state *SessionState) {
	clearSelection(state)
	state.Phase = PhaseStart
}

// CurrentQuestion returns the active question, or nil outside PhaseInProgress.
func CurrentQuestion(state *SessionState) *quiz.Question {
	if state.Phase != PhaseInProgress {
		return nil
	}
	if state.QuestionIndex < 0 || state.QuestionIndex >= len(state.Questions) {
		return nil
	}
	return &state.Questions[state.QuestionIndex]
}

// IsLastQuestion reports whether the active question is the final one.
func IsLastQuestion(state *SessionState) bool {
	return state.QuestionIndex == len(state.Questions)-1
}

func clearSelection(state *SessionState) {
	state.SelectedOption = ""
	state.Answered = false
	state.ShowExplanation = false
}

func hasOption(q *quiz.Question, option string) bool {
	for _, opt := range q.Options {
		if opt == option {
			return true
		}
	}
	return false
}
