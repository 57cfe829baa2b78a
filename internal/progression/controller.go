// Package progression links a passed level to its completion transaction,
// the shared progress mirror and automatic advancement to the next level.
package progression

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jazzmini/jsquiz/internal/quiz"
	"github.com/jazzmini/jsquiz/internal/txsubmit"
)

// DefaultAdvanceDelay leaves the confirmation on screen before moving on.
const DefaultAdvanceDelay = 5 * time.Second

// ErrNothingToRetry is returned by Retry when no passed level awaits a
// successful submission.
var ErrNothingToRetry = errors.New("no submission to retry")

// Submitter runs a completion attempt.
type Submitter interface {
	Submit(ctx context.Context, level int) (txsubmit.Attempt, error)
}

// Mirror is the shared progress document.
type Mirror interface {
	Raise(ctx context.Context, stats quiz.GlobalStats) (quiz.GlobalStats, error)
}

// Timer is a scheduled callback that can be stopped.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Outcome describes what happened after a level was submitted.
type Outcome struct {
	Attempt txsubmit.Attempt
	Err     *txsubmit.TxError

	// Stats is the mirror after a successful submission.
	Stats quiz.GlobalStats

	// AdvanceScheduled is set when NextLevel will start after the delay.
	AdvanceScheduled bool
	NextLevel        int

	// RetryAvailable is set when Retry may be offered to the user.
	RetryAvailable bool
}

// Submitted reports whether the provider accepted the transaction.
func (o Outcome) Submitted() bool {
	return o.Attempt.Status == txsubmit.StatusSubmitted
}

// Controller orchestrates the steps that follow a passed level.
type Controller struct {
	submitter Submitter
	mirror    Mirror
	delay     time.Duration
	afterFunc AfterFunc
	onAdvance func(level int)
	logger    *slog.Logger

	mu      sync.Mutex
	pending *passedLevel
	timer   Timer
	gen     uint64
}

type passedLevel struct {
	level int
	score int
}

// Option configures a Controller.
type Option func(*Controller)

// WithMirror raises the shared progress document on every submitted level.
func WithMirror(m Mirror) Option { return func(c *Controller) { c.mirror = m } }

// WithAdvanceDelay sets the pause before an automatic advance.
func WithAdvanceDelay(d time.Duration) Option { return func(c *Controller) { c.delay = d } }

// WithAfterFunc replaces time.AfterFunc, for tests.
func WithAfterFunc(f AfterFunc) Option { return func(c *Controller) { c.afterFunc = f } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(c *Controller) { c.logger = l } }

// NewController creates a Controller. onAdvance is called from the timer
// goroutine with the level to start.
func NewController(sub Submitter, onAdvance func(level int), opts ...Option) *Controller {
	c := &Controller{
		submitter: sub,
		delay:     DefaultAdvanceDelay,
		afterFunc: realAfterFunc,
		onAdvance: onAdvance,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// OnLevelPassed submits the completion of level. The session has already
// moved to its result and nothing here changes the score or pass state.
func (c *Controller) OnLevelPassed(ctx context.Context, level, score int) Outcome {
	c.CancelAutoAdvance()
	c.mu.Lock()
	c.pending = &passedLevel{level: level, score: score}
	c.mu.Unlock()
	return c.submit(ctx, level, score)
}

// Retry re-runs the submission for the last passed level without
// re-scoring it.
func (c *Controller) Retry(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	p := c.pending
	c.mu.Unlock()
	if p == nil {
		return Outcome{}, ErrNothingToRetry
	}
	return c.submit(ctx, p.level, p.score), nil
}

// CancelAutoAdvance drops any scheduled advance. Call it on every
// user-initiated navigation.
func (c *Controller) CancelAutoAdvance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// AdvancePending reports whether an automatic advance is scheduled.
func (c *Controller) AdvancePending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

func (c *Controller) submit(ctx context.Context, level, score int) Outcome {
	c.mu.Lock()
	startGen := c.gen
	c.mu.Unlock()

	attempt, err := c.submitter.Submit(ctx, level)
	out := Outcome{Attempt: attempt}

	if err != nil {
		var te *txsubmit.TxError
		if !errors.As(err, &te) {
			te = &txsubmit.TxError{Kind: txsubmit.KindProvider, Message: err.Error(), Err: err}
		}
		out.Err = te
		out.RetryAvailable = !te.Defect()
		return out
	}

	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()

	out.Stats = quiz.GlobalStats{MaxScore: score, HighestLevel: level + 1}
	if c.mirror != nil {
		merged, err := c.mirror.Raise(ctx, out.Stats)
		if err != nil {
			c.logger.Warn("progress mirror update failed", "level", level, "error", err)
		} else {
			out.Stats = merged
		}
	}

	if level < quiz.TotalLevels {
		out.NextLevel = level + 1
		out.AdvanceScheduled = c.schedule(startGen, out.NextLevel)
		if !out.AdvanceScheduled {
			c.logger.Debug("auto-advance skipped after navigation", "level", level)
		}
	}
	return out
}

// schedule arms the advance timer unless CancelAutoAdvance ran since
// startGen was read.
func (c *Controller) schedule(startGen uint64, next int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != startGen {
		return false
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.timer = c.afterFunc(c.delay, func() {
		c.mu.Lock()
		if c.gen != gen {
			c.mu.Unlock()
			return
		}
		c.timer = nil
		c.mu.Unlock()

		if c.onAdvance != nil {
			c.onAdvance(next)
		}
	})
	return true
}
