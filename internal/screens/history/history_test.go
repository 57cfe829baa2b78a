package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/jazzmini/jsquiz/internal/router"
	"github.com/jazzmini/jsquiz/internal/store"
)

type fakeEventRepo struct {
	events []store.AttemptEvent
	err    error
	opts   store.QueryOpts
}

func (f *fakeEventRepo) AppendAttempt(context.Context, store.AttemptEventData) error { return nil }

func (f *fakeEventRepo) QueryAttempts(_ context.Context, opts store.QueryOpts) ([]store.AttemptEvent, error) {
	f.opts = opts
	return f.events, f.err
}

func testEvents() []store.AttemptEvent {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []store.AttemptEvent{
		{Sequence: 2, Timestamp: ts, AttemptEventData: store.AttemptEventData{
			AttemptID: "a2", Level: 2, Status: "submitted",
			TxHash:  "0x" + strings.Repeat("ab", 32),
			Account: "0x1111111111111111111111111111111111111111", LatencyMs: 840,
		}},
		{Sequence: 1, Timestamp: ts.Add(-time.Minute), AttemptEventData: store.AttemptEventData{
			AttemptID: "a1", Level: 2, Status: "failed",
			ErrorKind: "user_rejected", ErrorMessage: "User rejected the request.",
		}},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected Init command")
	}
	s.Update(cmd())
}

func TestHistoryScreen_LoadsRecentAttempts(t *testing.T) {
	repo := &fakeEventRepo{events: testEvents()}
	s := New(repo)
	load(t, s)

	if repo.opts.Limit != Limit {
		t.Errorf("Limit = %d, want %d", repo.opts.Limit, Limit)
	}
	view := s.View(100, 24)
	if !strings.Contains(view, "submitted") || !strings.Contains(view, "user_rejected") {
		t.Errorf("view missing attempts:\n%s", view)
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&fakeEventRepo{})
	load(t, s)
	if !strings.Contains(s.View(100, 24), "No submissions yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := New(&fakeEventRepo{err: errors.New("disk gone")})
	load(t, s)
	if !strings.Contains(s.View(100, 24), "disk gone") {
		t.Error("expected error in view")
	}
}

func TestHistoryScreen_ExpandDetails(t *testing.T) {
	s := New(&fakeEventRepo{events: testEvents()})
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	view := s.View(100, 24)
	if !strings.Contains(view, "User rejected the request.") {
		t.Errorf("expected expanded error message:\n%s", view)
	}
	if strings.Contains(view, "after 840ms") {
		t.Error("only the selected attempt should be expanded")
	}
}

func TestHistoryScreen_Esc(t *testing.T) {
	s := New(&fakeEventRepo{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected router.PopScreenMsg")
	}
}
