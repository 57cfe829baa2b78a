package play

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/jazzmini/jsquiz/internal/progression"
	"github.com/jazzmini/jsquiz/internal/quiz"
	"github.com/jazzmini/jsquiz/internal/router"
	"github.com/jazzmini/jsquiz/internal/screen"
	sess "github.com/jazzmini/jsquiz/internal/session"
	"github.com/jazzmini/jsquiz/internal/txsubmit"
	"github.com/jazzmini/jsquiz/internal/ui/components"
)

// fakeProgression records calls and returns canned outcomes.
type fakeProgression struct {
	passed   [][2]int
	retries  int
	cancels  int
	outcome  progression.Outcome
	retryOut progression.Outcome
}

func (f *fakeProgression) OnLevelPassed(_ context.Context, level, score int) progression.Outcome {
	f.passed = append(f.passed, [2]int{level, score})
	return f.outcome
}

func (f *fakeProgression) Retry(context.Context) (progression.Outcome, error) {
	f.retries++
	return f.retryOut, nil
}

func (f *fakeProgression) CancelAutoAdvance() { f.cancels++ }

func submitted(level int) progression.Outcome {
	return progression.Outcome{
		Attempt:          txsubmit.Attempt{Level: level, Status: txsubmit.StatusSubmitted, Hash: "0xabc123"},
		Stats:            quiz.GlobalStats{MaxScore: 10, HighestLevel: level + 1},
		AdvanceScheduled: level < quiz.TotalLevels,
		NextLevel:        level + 1,
	}
}

func rejected(level int) progression.Outcome {
	te := &txsubmit.TxError{Kind: txsubmit.KindUserRejected, Message: "User rejected the request."}
	return progression.Outcome{
		Attempt:        txsubmit.Attempt{Level: level, Status: txsubmit.StatusFailed, Err: te},
		Err:            te,
		RetryAvailable: true,
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func newScreen(t *testing.T, prog Progression, level int) (*QuizScreen, *sess.SessionState) {
	t.Helper()
	bank, err := quiz.DefaultBank()
	if err != nil {
		t.Fatalf("default bank: %v", err)
	}
	state := sess.NewSessionState(bank)
	if err := sess.StartQuiz(state, quiz.GlobalStats{HighestLevel: quiz.TotalLevels}, level); err != nil {
		t.Fatalf("start: %v", err)
	}
	return New(Deps{State: state, Progression: prog}), state
}

// answer picks the right or a wrong option by letter and feeds the chosen
// message back into the screen.
func answer(t *testing.T, s *QuizScreen, state *sess.SessionState, correct bool) {
	t.Helper()
	q := sess.CurrentQuestion(state)
	if q == nil {
		t.Fatal("no current question")
	}
	idx := q.AnswerIndex()
	if !correct {
		idx = (idx + 1) % len(q.Options)
	}
	_, cmd := s.Update(keyPress(rune('a' + idx)))
	if cmd == nil {
		t.Fatal("expected a command from choosing an option")
	}
	s.Update(cmd())
	if !state.Answered {
		t.Fatal("selection not applied")
	}
}

// playLevel answers the first `correct` questions right and returns the
// command produced by finishing the level.
func playLevel(t *testing.T, s *QuizScreen, state *sess.SessionState, correct int) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for i := 0; i < quiz.QuestionsPerLevel; i++ {
		answer(t, s, state, i < correct)
		_, cmd = s.Update(enter())
	}
	if state.Phase != sess.PhaseResult {
		t.Fatalf("Phase = %v, want result", state.Phase)
	}
	return cmd
}

func TestQuizScreen_Title(t *testing.T) {
	s, _ := newScreen(t, nil, 3)
	if s.Title() != "Level 3" {
		t.Errorf("Title = %q, want %q", s.Title(), "Level 3")
	}
}

func TestQuizScreen_EnterBeforeAnswerDoesNotAdvance(t *testing.T) {
	s, state := newScreen(t, nil, 1)
	s.Update(keyPress('j'))
	_, cmd := s.Update(enter())
	if state.QuestionIndex != 0 {
		t.Fatalf("QuestionIndex = %d, want 0", state.QuestionIndex)
	}
	if cmd == nil {
		t.Fatal("expected Enter to choose the option under the cursor")
	}
	if _, ok := cmd().(components.ChosenMsg); !ok {
		t.Error("expected components.ChosenMsg")
	}
}

func TestQuizScreen_ExplanationShownAfterAnswer(t *testing.T) {
	s, state := newScreen(t, nil, 1)
	answer(t, s, state, true)

	view := s.View(80, 30)
	if !strings.Contains(view, "Correct!") {
		t.Error("expected verdict in view")
	}
	if !state.ShowExplanation {
		t.Error("expected explanation to be shown")
	}
}

func TestQuizScreen_PassSubmitsCompletion(t *testing.T) {
	prog := &fakeProgression{outcome: submitted(1)}
	s, state := newScreen(t, prog, 1)

	cmd := playLevel(t, s, state, quiz.QuestionsPerLevel)
	if cmd == nil {
		t.Fatal("expected a submission command after passing")
	}
	msg := cmd()
	if len(prog.passed) != 1 || prog.passed[0] != [2]int{1, 10} {
		t.Fatalf("OnLevelPassed calls = %v, want [[1 10]]", prog.passed)
	}

	_, cmd = s.Update(msg)
	if cmd == nil {
		t.Fatal("expected stats broadcast after a submitted attempt")
	}
	bm, ok := cmd().(router.BroadcastMsg)
	if !ok {
		t.Fatalf("expected router.BroadcastMsg, got %T", cmd())
	}
	if sm, ok := bm.Msg.(screen.StatsMsg); !ok || sm.Stats.HighestLevel != 2 {
		t.Errorf("broadcast = %#v, want StatsMsg with HighestLevel 2", bm.Msg)
	}

	view := s.View(80, 30)
	if !strings.Contains(view, "0xabc123") {
		t.Error("expected transaction hash in result view")
	}
	if !strings.Contains(view, "Level 2 starts shortly") {
		t.Error("expected auto-advance notice in result view")
	}
}

func TestQuizScreen_FailDoesNotSubmit(t *testing.T) {
	prog := &fakeProgression{}
	s, state := newScreen(t, prog, 1)

	cmd := playLevel(t, s, state, quiz.PassThreshold-1)
	if cmd != nil {
		t.Error("expected no submission after a failed level")
	}
	if len(prog.passed) != 0 {
		t.Errorf("OnLevelPassed called %d times, want 0", len(prog.passed))
	}

	for _, h := range s.KeyHints() {
		if h.Key == "N" {
			t.Error("next level must not be offered after a fail")
		}
	}

	s.Update(keyPress('n'))
	if state.Phase != sess.PhaseResult {
		t.Error("next level started after a fail")
	}

	s.Update(keyPress('r'))
	if state.Phase != sess.PhaseInProgress || state.CurrentLevel != 1 {
		t.Errorf("retry: phase=%v level=%d, want in_progress level 1", state.Phase, state.CurrentLevel)
	}
	if state.Score != 0 || state.QuestionIndex != 0 {
		t.Errorf("retry did not reset: score=%d index=%d", state.Score, state.QuestionIndex)
	}
}

func TestQuizScreen_NextLevelAfterPass(t *testing.T) {
	s, state := newScreen(t, nil, 4)
	playLevel(t, s, state, quiz.PassThreshold)

	s.Update(keyPress('n'))
	if state.CurrentLevel != 5 || state.Phase != sess.PhaseInProgress {
		t.Errorf("level=%d phase=%v, want level 5 in progress", state.CurrentLevel, state.Phase)
	}
}

func TestQuizScreen_AutoAdvance(t *testing.T) {
	prog := &fakeProgression{outcome: submitted(3)}
	s, state := newScreen(t, prog, 3)
	cmd := playLevel(t, s, state, quiz.QuestionsPerLevel)
	s.Update(cmd())

	s.Update(AutoAdvanceMsg{Level: 4})
	if state.CurrentLevel != 4 || state.Phase != sess.PhaseInProgress {
		t.Errorf("level=%d phase=%v, want level 4 in progress", state.CurrentLevel, state.Phase)
	}
}

func TestQuizScreen_AutoAdvanceIgnoredOutsideResult(t *testing.T) {
	s, state := newScreen(t, nil, 2)
	s.Update(AutoAdvanceMsg{Level: 3})
	if state.CurrentLevel != 2 {
		t.Errorf("CurrentLevel = %d, want 2", state.CurrentLevel)
	}
}

func TestQuizScreen_RetryTransaction(t *testing.T) {
	prog := &fakeProgression{outcome: rejected(2), retryOut: submitted(2)}
	s, state := newScreen(t, prog, 2)
	cmd := playLevel(t, s, state, quiz.QuestionsPerLevel)
	s.Update(cmd())

	if !strings.Contains(s.View(80, 30), "Transaction rejected in wallet") {
		t.Error("expected rejection in result view")
	}

	_, cmd = s.Update(keyPress('t'))
	if cmd == nil {
		t.Fatal("expected a retry command")
	}
	s.Update(cmd())
	if prog.retries != 1 {
		t.Errorf("Retry called %d times, want 1", prog.retries)
	}
	if state.Score != quiz.QuestionsPerLevel || !state.LevelPassed {
		t.Error("retrying the transaction must not re-score the level")
	}
	if !strings.Contains(s.View(80, 30), "0xabc123") {
		t.Error("expected hash after a successful retry")
	}

	_, cmd = s.Update(keyPress('t'))
	if cmd != nil {
		t.Error("retry must not be offered after a successful submission")
	}
}

func TestQuizScreen_TxStatusMsg(t *testing.T) {
	prog := &fakeProgression{outcome: submitted(1)}
	s, state := newScreen(t, prog, 1)
	playLevel(t, s, state, quiz.QuestionsPerLevel)

	s.Update(TxStatusMsg{Attempt: txsubmit.Attempt{Level: 1, Status: txsubmit.StatusAwaitingWallet, RunID: state.SessionID}})
	if !strings.Contains(s.View(80, 30), "Waiting for wallet") {
		t.Error("expected live attempt status in result view")
	}
}

func TestQuizScreen_TxStatusFromOtherRunIgnored(t *testing.T) {
	prog := &fakeProgression{outcome: submitted(1)}
	s, state := newScreen(t, prog, 1)
	playLevel(t, s, state, quiz.QuestionsPerLevel)

	s.Update(TxStatusMsg{Attempt: txsubmit.Attempt{Level: 1, Status: txsubmit.StatusAwaitingWallet, RunID: "earlier-run"}})
	if strings.Contains(s.View(80, 30), "Waiting for wallet") {
		t.Error("status from another run must not be shown")
	}
}

func TestQuizScreen_LateOutcomeAfterRestartIgnored(t *testing.T) {
	prog := &fakeProgression{outcome: rejected(2)}
	s, state := newScreen(t, prog, 2)
	stale := playLevel(t, s, state, quiz.QuestionsPerLevel)
	if stale == nil {
		t.Fatal("expected a submission command")
	}

	// Restart and pass again before the first submission returns.
	s.Update(keyPress('r'))
	playLevel(t, s, state, quiz.QuestionsPerLevel)

	s.Update(stale())
	if s.outcome != nil {
		t.Error("outcome from the earlier run must be dropped")
	}
	if s.canRetrySubmission() {
		t.Error("retry offered from a stale outcome")
	}
	if strings.Contains(s.View(80, 30), "Transaction rejected in wallet") {
		t.Error("stale rejection shown for the new run")
	}
}

func TestQuizScreen_EscReturnsToLevels(t *testing.T) {
	prog := &fakeProgression{}
	s, state := newScreen(t, prog, 1)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected router.PopScreenMsg")
	}
	if state.Phase != sess.PhaseStart {
		t.Errorf("Phase = %v, want start", state.Phase)
	}
	if prog.cancels != 1 {
		t.Errorf("CancelAutoAdvance called %d times, want 1", prog.cancels)
	}
}
