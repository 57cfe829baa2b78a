package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jazzmini/jsquiz/internal/progression"
	"github.com/jazzmini/jsquiz/internal/quiz"
	"github.com/jazzmini/jsquiz/internal/router"
	"github.com/jazzmini/jsquiz/internal/screen"
	"github.com/jazzmini/jsquiz/internal/screens/levels"
	"github.com/jazzmini/jsquiz/internal/screens/play"
	"github.com/jazzmini/jsquiz/internal/screens/welcome"
	sess "github.com/jazzmini/jsquiz/internal/session"
	"github.com/jazzmini/jsquiz/internal/store"
	"github.com/jazzmini/jsquiz/internal/txsubmit"
	"github.com/jazzmini/jsquiz/internal/ui/layout"
	"github.com/jazzmini/jsquiz/internal/wallet"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	stats  *quiz.GlobalStats // shared with the deferred levels screen
	wallet string
	width  int
	height int
}

// newAppModel creates an AppModel showing the level selection screen,
// behind the welcome splash when splash is set.
func newAppModel(deps play.Deps, stats quiz.GlobalStats, events store.EventRepo, splash bool) AppModel {
	stats = stats.Normalize()
	m := AppModel{stats: &stats}

	levelsScreen := func() screen.Screen {
		return levels.New(deps, *m.stats, events)
	}
	if splash {
		m.router = router.New(welcome.New(levelsScreen))
	} else {
		m.router = router.New(levelsScreen())
	}
	return m
}

func (m AppModel) headerInfo() layout.HeaderInfo {
	return layout.HeaderInfo{
		MaxScore:     m.stats.MaxScore,
		HighestLevel: m.stats.HighestLevel,
		Wallet:       m.wallet,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screen.StatsMsg:
		m.setStats(msg.Stats)
		return m, m.router.Broadcast(msg)

	case router.BroadcastMsg:
		if sm, ok := msg.Msg.(screen.StatsMsg); ok {
			m.setStats(sm.Stats)
		}

	case screen.WalletMsg:
		m.wallet = msg.Address
		return m, nil
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// setStats records the mirror document as reported. The mirror merges
// writes itself, so a lower value here means it was reset.
func (m AppModel) setStats(stats quiz.GlobalStats) {
	*m.stats = stats.Normalize()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerInfo(), m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(kp.KeyHints(), footerHints...)
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and the background watchers feeding it.
func Run(ctx context.Context, svc *Services) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stats, err := svc.Progress.Get(ctx)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	// The program is created after the model, so callbacks reach it
	// through this variable.
	var p *tea.Program
	send := func(msg tea.Msg) {
		if p != nil {
			p.Send(msg)
		}
	}

	submitter := svc.NewSubmitter(txsubmit.WithObserver(func(a txsubmit.Attempt) {
		send(play.TxStatusMsg{Attempt: a})
	}))
	controller := progression.NewController(submitter,
		func(level int) { send(play.AutoAdvanceMsg{Level: level}) },
		progression.WithMirror(svc.Progress),
		progression.WithAdvanceDelay(svc.Config.Progress.AdvanceDelay),
		progression.WithLogger(svc.Logger),
	)

	deps := play.Deps{
		State:       sess.NewSessionState(svc.Bank),
		Progression: controller,
	}
	p = tea.NewProgram(newAppModel(deps, stats, svc.Events, true))

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	go func() {
		err := svc.Progress.Watch(ctx, svc.Config.Progress.PollInterval, func(s quiz.GlobalStats) {
			send(screen.StatsMsg{Stats: s})
		})
		if err != nil && ctx.Err() == nil {
			svc.Logger.Warn("progress watch stopped", "error", err)
		}
	}()

	if !svc.Config.LocalOnly() {
		go trackWallet(ctx, svc, send)
	}

	svc.Logger.Info("starting", "levels", quiz.TotalLevels, "local_only", svc.Config.LocalOnly())
	_, err = p.Run()
	return err
}

// trackWallet keeps the header address in step with the wallet's accounts.
func trackWallet(ctx context.Context, svc *Services, send func(tea.Msg)) {
	provider, ok := svc.Detector.TryDetect(ctx)
	if !ok {
		svc.Logger.Info("no wallet detected")
		return
	}
	if c, ok := provider.(interface{ Close() }); ok {
		defer c.Close()
	}

	conn := wallet.NewConnection(svc.Logger)
	for ev := range wallet.PollEvents(ctx, provider, svc.Config.Wallet.AccountPollInterval) {
		conn.HandleEvent(ev)
		send(screen.WalletMsg{Address: conn.Address()})
	}
}
