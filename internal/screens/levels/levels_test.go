package levels

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/jazzmini/jsquiz/internal/quiz"
	"github.com/jazzmini/jsquiz/internal/router"
	"github.com/jazzmini/jsquiz/internal/screen"
	"github.com/jazzmini/jsquiz/internal/screens/play"
	sess "github.com/jazzmini/jsquiz/internal/session"
	"github.com/jazzmini/jsquiz/internal/ui/components"
)

func newScreen(t *testing.T, stats quiz.GlobalStats) (*LevelsScreen, *sess.SessionState) {
	t.Helper()
	bank, err := quiz.DefaultBank()
	if err != nil {
		t.Fatalf("default bank: %v", err)
	}
	state := sess.NewSessionState(bank)
	return New(play.Deps{State: state}, stats, nil), state
}

func TestLevelsScreen_StartsPlayableLevel(t *testing.T) {
	s, state := newScreen(t, quiz.GlobalStats{MaxScore: 8, HighestLevel: 3})

	_, cmd := s.Update(components.LevelSelectedMsg{Level: 3})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected router.PushScreenMsg")
	}
	if _, ok := push.Screen.(*play.QuizScreen); !ok {
		t.Errorf("pushed %T, want *play.QuizScreen", push.Screen)
	}
	if state.Phase != sess.PhaseInProgress || state.CurrentLevel != 3 {
		t.Errorf("phase=%v level=%d, want in_progress level 3", state.Phase, state.CurrentLevel)
	}
}

func TestLevelsScreen_LockedLevelRejected(t *testing.T) {
	s, state := newScreen(t, quiz.InitialStats())

	_, cmd := s.Update(components.LevelSelectedMsg{Level: 4})
	if cmd != nil {
		t.Error("expected no push for a locked level")
	}
	if state.Phase != sess.PhaseStart {
		t.Errorf("Phase = %v, want start", state.Phase)
	}
}

func TestLevelsScreen_StatsMsgUnlocks(t *testing.T) {
	s, _ := newScreen(t, quiz.InitialStats())
	s.Update(screen.StatsMsg{Stats: quiz.GlobalStats{MaxScore: 9, HighestLevel: 5}})

	if got := s.Stats().HighestLevel; got != 5 {
		t.Errorf("HighestLevel = %d, want 5", got)
	}
	_, cmd := s.Update(components.LevelSelectedMsg{Level: 5})
	if cmd == nil {
		t.Error("expected level 5 to be playable after the update")
	}
}

func TestLevelsScreen_EnterSelectsFrontier(t *testing.T) {
	s, _ := newScreen(t, quiz.GlobalStats{HighestLevel: 2})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected selection command")
	}
	sel, ok := cmd().(components.LevelSelectedMsg)
	if !ok || sel.Level != 2 {
		t.Errorf("got %#v, want LevelSelectedMsg{Level: 2}", sel)
	}
}

func TestLevelsScreen_NoHistoryWithoutRepo(t *testing.T) {
	s, _ := newScreen(t, quiz.InitialStats())
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"}); cmd != nil {
		t.Error("history must not open without an event repo")
	}
	for _, h := range s.KeyHints() {
		if h.Key == "H" {
			t.Error("history hint shown without an event repo")
		}
	}
}

func TestLevelsScreen_View(t *testing.T) {
	s, _ := newScreen(t, quiz.InitialStats())
	if s.View(100, 30) == "" {
		t.Error("expected non-empty view")
	}
}
