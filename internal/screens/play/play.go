// Package play is the question and result screen of a level run.
package play

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/jazzmini/jsquiz/internal/progression"
	"github.com/jazzmini/jsquiz/internal/quiz"
	"github.com/jazzmini/jsquiz/internal/router"
	"github.com/jazzmini/jsquiz/internal/screen"
	sess "github.com/jazzmini/jsquiz/internal/session"
	"github.com/jazzmini/jsquiz/internal/txsubmit"
	"github.com/jazzmini/jsquiz/internal/ui/components"
	"github.com/jazzmini/jsquiz/internal/ui/layout"
)

// Progression runs the steps that follow a passed level.
// *progression.Controller implements it.
type Progression interface {
	OnLevelPassed(ctx context.Context, level, score int) progression.Outcome
	Retry(ctx context.Context) (progression.Outcome, error)
	CancelAutoAdvance()
}

// Deps are shared by the level selection and quiz screens.
type Deps struct {
	State *sess.SessionState

	// Progression may be nil; passed levels are then not submitted.
	Progression Progression
}

// QuizScreen shows the active question, and the result once the last
// question has been advanced past.
type QuizScreen struct {
	deps    Deps
	choice  components.MultiChoice
	summary *sess.LevelSummary

	attempt    *txsubmit.Attempt
	outcome    *progression.Outcome
	submitting bool
	errMsg     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for a session already in progress.
func New(deps Deps) *QuizScreen {
	s := &QuizScreen{deps: deps}
	s.loadQuestion()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return fmt.Sprintf("Level %d", s.deps.State.CurrentLevel)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	state := s.deps.State
	if state.Phase != sess.PhaseResult {
		if state.Answered {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Next"},
				{Key: "Esc", Description: "Levels"},
			}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "A-D", Description: "Answer"},
			{Key: "Esc", Description: "Levels"},
		}
	}

	hints := []layout.KeyHint{{Key: "R", Description: "Retry level"}}
	if s.summary != nil && s.summary.HasNext {
		hints = append(hints, layout.KeyHint{Key: "N", Description: "Next level"})
	}
	if s.canRetrySubmission() {
		hints = append(hints, layout.KeyHint{Key: "T", Description: "Retry transaction"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Levels"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	state := s.deps.State

	switch msg := msg.(type) {
	case components.ChosenMsg:
		sess.SelectOption(state, msg.Option)
		return s, nil

	case TxStatusMsg:
		if state.Phase == sess.PhaseResult && msg.Attempt.RunID == state.SessionID {
			a := msg.Attempt
			s.attempt = &a
		}
		return s, nil

	case outcomeMsg:
		if msg.SessionID != state.SessionID {
			return s, nil
		}
		s.submitting = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		out := msg.Outcome
		s.outcome = &out
		s.attempt = &out.Attempt
		if out.Submitted() {
			stats := out.Stats
			return s, func() tea.Msg {
				return router.BroadcastMsg{Msg: screen.StatsMsg{Stats: stats}}
			}
		}
		return s, nil

	case AutoAdvanceMsg:
		if state.Phase != sess.PhaseResult {
			return s, nil
		}
		return s, s.start(msg.Level)

	case tea.KeyMsg:
		if state.Phase == sess.PhaseResult {
			return s, s.resultKey(msg)
		}
		return s, s.questionKey(msg)
	}

	return s, nil
}

func (s *QuizScreen) questionKey(msg tea.KeyMsg) tea.Cmd {
	state := s.deps.State
	switch msg.String() {
	case "esc":
		return s.back()
	case "enter", "space":
		if state.Answered {
			return s.advance()
		}
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return cmd
}

func (s *QuizScreen) resultKey(msg tea.KeyMsg) tea.Cmd {
	state := s.deps.State
	switch msg.String() {
	case "esc":
		return s.back()
	case "r":
		return s.start(state.CurrentLevel)
	case "n":
		if s.summary != nil && s.summary.HasNext {
			return s.start(state.CurrentLevel + 1)
		}
	case "t":
		if s.canRetrySubmission() {
			s.submitting = true
			s.attempt = nil
			s.errMsg = ""
			p := s.deps.Progression
			id := state.SessionID
			return func() tea.Msg {
				out, err := p.Retry(txsubmit.ContextWithRunID(context.Background(), id))
				return outcomeMsg{SessionID: id, Outcome: out, Err: err}
			}
		}
	}
	return nil
}

func (s *QuizScreen) advance() tea.Cmd {
	state := s.deps.State
	finished, err := sess.Advance(state)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if !finished {
		s.loadQuestion()
		return nil
	}

	s.summary = sess.BuildSummary(state)
	if !s.summary.Passed || s.deps.Progression == nil {
		return nil
	}

	s.submitting = true
	p := s.deps.Progression
	level, score, id := s.summary.Level, s.summary.Score, state.SessionID
	return func() tea.Msg {
		ctx := txsubmit.ContextWithRunID(context.Background(), id)
		return outcomeMsg{SessionID: id, Outcome: p.OnLevelPassed(ctx, level, score)}
	}
}

// start begins level from the result view, either a retry or the next
// level after a pass.
func (s *QuizScreen) start(level int) tea.Cmd {
	s.cancelAdvance()
	if err := sess.StartQuiz(s.deps.State, quiz.GlobalStats{}, level); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.summary = nil
	s.attempt = nil
	s.outcome = nil
	s.submitting = false
	s.errMsg = ""
	s.loadQuestion()
	return nil
}

func (s *QuizScreen) back() tea.Cmd {
	s.cancelAdvance()
	sess.Back(s.deps.State)
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *QuizScreen) cancelAdvance() {
	if s.deps.Progression != nil {
		s.deps.Progression.CancelAutoAdvance()
	}
}

func (s *QuizScreen) canRetrySubmission() bool {
	return !s.submitting && s.outcome != nil && s.outcome.RetryAvailable && s.deps.Progression != nil
}

func (s *QuizScreen) loadQuestion() {
	q := sess.CurrentQuestion(s.deps.State)
	if q == nil {
		s.choice = components.MultiChoice{}
		return
	}
	s.choice = components.NewMultiChoice(q.Question, q.Options, q.Answer)
}
